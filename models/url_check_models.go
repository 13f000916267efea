package models

// CheckURLResponse describes the liveness of one URL, using the same
// is_exist / redirected values written to processed spreadsheets.
type CheckURLResponse struct {
	URL        string `json:"url" example:"http://example.com/old"`
	IsExist    bool   `json:"is_exist" example:"true"`
	Redirected string `json:"redirected" example:"https://example.com/new"`
	Outcome    string `json:"outcome" example:"reachable"`
	StatusCode int    `json:"status_code,omitempty" example:"200"`
}
