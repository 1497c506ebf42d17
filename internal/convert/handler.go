package convert

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Suhaibk137/atsclaude/internal/shared/server/middleware"
	"github.com/Suhaibk137/atsclaude/internal/shared/server/respond"
)

// multipartOverhead leaves room for boundaries and the apiKey field on top
// of the file limit.
const multipartOverhead = 1 << 20

// Handler serves POST /convert.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the convert route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/convert", h.convert)
}

func (h *Handler) convert(c *gin.Context) {
	limit := h.Svc.maxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	in := Input{
		RequestID: middleware.RequestIDFromContext(c),
	}

	fileHeader, err := c.FormFile("resume")
	switch {
	case err == nil:
		if fileHeader.Size > limit {
			h.fail(c, TooLarge(limit))
			return
		}
		data, err := readUpload(fileHeader, limit)
		if err != nil {
			h.fail(c, err)
			return
		}
		in.FileName = fileHeader.Filename
		in.MimeType = fileHeader.Header.Get("Content-Type")
		in.Data = data
	case isBodyTooLarge(err):
		h.fail(c, TooLarge(limit))
		return
	}
	// A missing file leaves in.Data empty; the service reports it.
	in.APIKey = c.PostForm("apiKey")

	out, err := h.Svc.Convert(c.Request.Context(), in)
	if out.ConversionID != "" {
		c.Set(middleware.ConversionIDKey, out.ConversionID)
		c.Header("X-Conversion-Id", out.ConversionID)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.FileName))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, &ValidationError{Field: "resume", Message: "Unable to read uploaded file"}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, &ValidationError{Field: "resume", Message: "Unable to read uploaded file"}
	}
	if int64(len(data)) > limit {
		return nil, TooLarge(limit)
	}
	return data, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}

// fail maps err onto the response status. Validation problems are the
// caller's fault; everything else is a 500 carrying the error message.
func (h *Handler) fail(c *gin.Context, err error) {
	code := ErrorCode(err)
	switch code {
	case CodeValidation:
		respond.Error(c, http.StatusBadRequest, code, err.Error())
	case CodeRender, CodeInternal:
		respond.Error(c, http.StatusInternalServerError, code, "Failed to generate document")
	default:
		respond.Error(c, http.StatusInternalServerError, code, err.Error())
	}
}
