package permitclient

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ikkim/permit-backend/internal/app/validation"
)

const DefaultTimeout = 30 * time.Second

// Config represents the configuration for the permit API client
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api/v1
	BaseURL string

	// Timeout bounds every request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// MaxUploadSize is checked before any upload is sent. Zero uses validation.MaxUploadSize.
	MaxUploadSize int64

	// AdminToken is sent on admin calls. Login sets it.
	AdminToken string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base URL %q is not absolute", ErrInvalidConfig, c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = validation.MaxUploadSize
	}
	return nil
}
