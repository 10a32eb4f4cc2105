package permitclient

import (
	"time"

	"github.com/ikkim/permit-backend/internal/app/model"
)

// UploadResult is returned by the upload endpoints. URL is only set for test uploads.
type UploadResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileName string `json:"fileName"`
	Path     string `json:"path"`
	URL      string `json:"url,omitempty"`
}

// ApplicationList is the admin dashboard payload.
type ApplicationList struct {
	Applications []model.ApplicationSummary `json:"applications"`
	Stats        model.ApplicationStats     `json:"stats"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type signedURLResponse struct {
	Success   bool   `json:"success"`
	SignedURL string `json:"signedUrl"`
}

type applicationIDRequest struct {
	ApplicationID string `json:"applicationId"`
}

type businessAccountRequest struct {
	BusinessAccountNo string `json:"businessAccountNo"`
}

type modifyRequest struct {
	ApplicationID string `json:"applicationId"`
	model.ApplicationForm
}

type renewRequest struct {
	BusinessAccountNo string `json:"businessAccountNo"`
	model.ApplicationForm
}
