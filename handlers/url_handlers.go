package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/sheet_url_checker/models"
	"github.com/vit0-9/sheet_url_checker/pkg/logging"
	"github.com/vit0-9/sheet_url_checker/pkg/utils"
	"github.com/vit0-9/sheet_url_checker/pkg/utils/table"
)

// URLColumn is the column, matched case-insensitively, holding the URLs to check.
const URLColumn = "urls"

// Messages returned in the error field of failed uploads.
const (
	MsgNoFilePart      = "No file part in the request"
	MsgNoSelectedFile  = "No selected file"
	MsgInvalidFileType = "Invalid file type. Only .xlsx and .csv allowed"
	MsgEmptyFile       = "Uploaded file is empty"
	MsgColumnNotFound  = "Column 'Urls' not found in the file"
	MsgFileTooLarge    = "Uploaded file is too large"
)

// URLCheckHandlers groups the spreadsheet upload and single URL check endpoints.
type URLCheckHandlers struct {
	checker     utils.URLChecker
	annotator   *utils.Annotator
	maxFileSize int64
}

func NewURLCheckHandlers(checker utils.URLChecker, annotator *utils.Annotator, maxFileSize int64) *URLCheckHandlers {
	return &URLCheckHandlers{
		checker:     checker,
		annotator:   annotator,
		maxFileSize: maxFileSize,
	}
}

// UploadHandler godoc
// @Summary      Check every URL of a spreadsheet
// @Description  Accepts an .xlsx or .csv file with a "Urls" column (any case), checks each URL and returns the file with "is_exist" and "redirected" columns appended.
// @Tags         URL Checking
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Produce      json
// @Param        file formData file true "Spreadsheet (.xlsx or .csv)"
// @Success      200 {file} file "Processed spreadsheet as attachment processed_<filename>"
// @Failure      400 {object} models.ErrorResponse "Missing file, bad extension, empty file or missing Urls column"
// @Failure      413 {object} models.ErrorResponse "File exceeds the upload limit"
// @Failure      500 {object} models.ErrorResponse "File could not be processed"
// @Router       /upload [post]
func (h *URLCheckHandlers) UploadHandler(c *gin.Context) {
	logger := logging.FromContext(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: MsgFileTooLarge})
		case hasEmptyFilePart(c.Request):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgNoSelectedFile})
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgNoFilePart})
		}
		return
	}

	filename := fileHeader.Filename
	if filename == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgNoSelectedFile})
		return
	}

	format, ok := formatFromFilename(filename)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgInvalidFileType})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		processingError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		processingError(c, err)
		return
	}

	tbl, err := table.Decode(data, format)
	if errors.Is(err, table.ErrEmptyFile) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgEmptyFile})
		return
	}
	if err != nil {
		processingError(c, err)
		return
	}

	col, ok := tbl.FindColumn(URLColumn)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgColumnNotFound})
		return
	}

	logger.Info("checking uploaded file", "filename", filename, "format", format, "rows", tbl.RowCount())

	if err := h.annotator.AnnotateTable(c.Request.Context(), tbl, col.Name); err != nil {
		processingError(c, err)
		return
	}

	out, err := table.Encode(tbl, format)
	if err != nil {
		processingError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "processed_" + filename,
	}))
	c.Data(http.StatusOK, format.MIMEType(), out)
}

// CheckURLHandler godoc
// @Summary      Check a single URL
// @Description  Requests the URL, following redirects, and reports whether it exists and where it redirects to.
// @Tags         URL Checking
// @Produce      json
// @Param        url query string true "URL to check"
// @Success      200 {object} models.CheckURLResponse "Check result, including unreachable and invalid URLs"
// @Failure      400 {object} models.ErrorResponse "Missing url parameter"
// @Router       /api/v1/check [get]
func (h *URLCheckHandlers) CheckURLHandler(c *gin.Context) {
	urlQuery := c.Query("url")
	if urlQuery == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url query parameter is required"})
		return
	}

	result := h.checker.Check(c.Request.Context(), urlQuery)
	// PureJSON keeps '&' and friends in URLs unescaped.
	c.PureJSON(http.StatusOK, models.CheckURLResponse{
		URL:        urlQuery,
		IsExist:    result.IsExist(),
		Redirected: result.Redirected(),
		Outcome:    result.Outcome.String(),
		StatusCode: result.StatusCode,
	})
}

// formatFromFilename returns the format named by the last dot-separated
// segment of filename.
func formatFromFilename(filename string) (table.Format, bool) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "", false
	}
	format, err := table.ParseFormat(filename[idx+1:])
	if err != nil {
		return "", false
	}
	return format, true
}

// hasEmptyFilePart reports whether the form carried a "file" part without a
// filename. The multipart reader files such parts under values, not files.
func hasEmptyFilePart(r *http.Request) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value["file"]
	return ok
}

func processingError(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).Error("processing upload failed", "error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: fmt.Sprintf("An error occurred processing the file: %s", err),
	})
}
