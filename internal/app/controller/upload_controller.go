package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/internal/middleware"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

type SignedURLRequest struct {
	FilePath string `json:"filePath"`
}

// Upload stores an application document
// POST /api/v1/upload
func (ctrl *UploadController) Upload(c *gin.Context) {
	ctrl.handleUpload(c, ctrl.uploadService.Upload)
}

// UploadTest stores a file under test/ to check the bucket
// POST /api/v1/upload-test
func (ctrl *UploadController) UploadTest(c *gin.Context) {
	ctrl.handleUpload(c, ctrl.uploadService.UploadTest)
}

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead int64 = 1 << 20

func (ctrl *UploadController) handleUpload(c *gin.Context, store func(service.FileUpload) (*service.UploadedFile, error)) {
	log := middleware.GetLoggerFromContext(c)

	limit := validation.MaxUploadSize + multipartOverhead
	if c.Request.ContentLength > limit {
		errors.BadRequest(c, errors.UploadFileTooLarge, validation.ErrFileTooLarge.Error())
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			log.Warn("Upload body exceeds limit", map[string]interface{}{
				"limit": tooLarge.Limit,
			})
			errors.BadRequest(c, errors.UploadFileTooLarge, validation.ErrFileTooLarge.Error())
			return
		}
		errors.BadRequest(c, errors.UploadMissingFile, "No file provided")
		return
	}

	file, err := header.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"filename": header.Filename,
		})
		errors.InternalError(c, "")
		return
	}
	defer file.Close()

	uploaded, err := store(service.FileUpload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, validation.ErrEmptyFile):
			errors.BadRequest(c, errors.UploadMissingFile, err.Error())
		case stderrors.Is(err, validation.ErrFileTooLarge):
			errors.BadRequest(c, errors.UploadFileTooLarge, err.Error())
		case stderrors.Is(err, validation.ErrInvalidFileType):
			errors.BadRequest(c, errors.UploadInvalidFileType, err.Error())
		default:
			errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Failed to upload file")
		}
		return
	}

	response := gin.H{
		"success":  true,
		"message":  "File uploaded successfully",
		"fileName": uploaded.FileName,
		"path":     uploaded.Path,
	}
	if uploaded.URL != "" {
		response["url"] = uploaded.URL
	}
	c.JSON(http.StatusOK, response)
}

// SignedURL issues a time-limited download link for a stored document
// POST /api/v1/files/signed-url
func (ctrl *UploadController) SignedURL(c *gin.Context) {
	var req SignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	url, err := ctrl.uploadService.SignedURL(req.FilePath)
	if err != nil {
		if stderrors.Is(err, service.ErrFilePathRequired) {
			errors.BadRequest(c, errors.ValidationRequired, "File path is required")
			return
		}
		errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalExternalAPI, "Failed to create signed URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"signedUrl": url,
	})
}
