// models/common_models.go
package models

// ErrorResponse is the body of every failed API response.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid file type. Only .xlsx and .csv allowed"`
}

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status" example:"UP"`
}
