// Package permitclient is a Go client for the permit portal API. It
// implements wizard.Submitter and wizard.RenewalSubmitter so a draft built
// with the wizard package can be sent straight to a server.
package permitclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/pkg/logger"
)

// Client represents a permit API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// SetAdminToken replaces the token sent on admin calls.
func (c *Client) SetAdminToken(token string) {
	c.config.AdminToken = token
}

// SubmitApplication creates a new application.
func (c *Client) SubmitApplication(ctx context.Context, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	var result model.SubmissionResult
	if err := c.doJSON(ctx, http.MethodPost, "/applications", form, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// ModifyApplication rewrites a submitted application.
func (c *Client) ModifyApplication(ctx context.Context, applicationID string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	var result model.SubmissionResult
	req := modifyRequest{ApplicationID: applicationID, ApplicationForm: *form}
	if err := c.doJSON(ctx, http.MethodPut, "/applications/modify", req, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchApplication loads an application for modification.
func (c *Client) SearchApplication(ctx context.Context, applicationID string) (*model.ApplicationForm, error) {
	var form model.ApplicationForm
	req := applicationIDRequest{ApplicationID: applicationID}
	if err := c.doJSON(ctx, http.MethodPost, "/applications/search", req, &form, false); err != nil {
		return nil, err
	}
	return &form, nil
}

// RenewSearch loads a business and its latest application cycle.
func (c *Client) RenewSearch(ctx context.Context, businessAccountNo string) (*model.ApplicationForm, error) {
	var form model.ApplicationForm
	req := businessAccountRequest{BusinessAccountNo: businessAccountNo}
	if err := c.doJSON(ctx, http.MethodPost, "/applications/renew-search", req, &form, false); err != nil {
		return nil, err
	}
	return &form, nil
}

// RenewApplication submits a renewal for an existing business.
func (c *Client) RenewApplication(ctx context.Context, businessAccountNo string, form *model.ApplicationForm) (*model.SubmissionResult, error) {
	var result model.SubmissionResult
	req := renewRequest{BusinessAccountNo: businessAccountNo, ApplicationForm: *form}
	if err := c.doJSON(ctx, http.MethodPost, "/applications/renew", req, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Track reports the release status of an application.
func (c *Client) Track(ctx context.Context, applicationID string) (*model.TrackingResult, error) {
	var result model.TrackingResult
	req := applicationIDRequest{ApplicationID: applicationID}
	if err := c.doJSON(ctx, http.MethodPost, "/track", req, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Upload sends one document. Size and type are checked before any request is made.
// test stores the file under test/ and returns its public URL.
func (c *Client) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string, test bool) (*UploadResult, error) {
	if err := validation.ValidateUpload(size, contentType, c.config.MaxUploadSize); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	path := "/upload"
	if test {
		path = "/upload-test"
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, &buf, false)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadFile uploads a local file, taking the content type from its extension.
func (c *Client) UploadFile(ctx context.Context, path string, test bool) (*UploadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if err := validation.ValidateUpload(info.Size(), contentType, c.config.MaxUploadSize); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Upload(ctx, filepath.Base(path), f, info.Size(), contentType, test)
}

// SignedURL returns a time-limited download link for a stored document.
func (c *Client) SignedURL(ctx context.Context, filePath string) (string, error) {
	var resp signedURLResponse
	req := map[string]string{"filePath": filePath}
	if err := c.doJSON(ctx, http.MethodPost, "/files/signed-url", req, &resp, false); err != nil {
		return "", err
	}
	return resp.SignedURL, nil
}

// Login exchanges the staff password for an admin token and keeps it for later admin calls.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var resp loginResponse
	req := map[string]string{"password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/admin/login", req, &resp, false); err != nil {
		return "", err
	}
	c.config.AdminToken = resp.Token
	return resp.Token, nil
}

// Logout revokes the current admin token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/admin/logout", nil, nil, true); err != nil {
		return err
	}
	c.config.AdminToken = ""
	return nil
}

// ListApplications returns the dashboard rows matching search, with stats over every row.
func (c *Client) ListApplications(ctx context.Context, search string) (*ApplicationList, error) {
	var list ApplicationList
	if err := c.doJSON(ctx, http.MethodGet, "/admin/applications"+searchQuery(search), nil, &list, true); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateApplication saves an edited dashboard row.
func (c *Client) UpdateApplication(ctx context.Context, row *model.ApplicationSummary) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodPut, "/admin/applications", row, &resp, true)
}

// DeleteApplication removes an application and its office reviews.
func (c *Client) DeleteApplication(ctx context.Context, applicationID string) error {
	var resp messageResponse
	path := "/admin/applications?id=" + url.QueryEscape(applicationID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, &resp, true)
}

// ExportApplications writes the dashboard spreadsheet to w.
func (c *Client) ExportApplications(ctx context.Context, search string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/admin/applications/export"+searchQuery(search), nil, true)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	return nil
}

func searchQuery(search string) string {
	if search == "" {
		return ""
	}
	return "?search=" + url.QueryEscape(search)
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// doJSON sends payload as JSON and decodes a 200 response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}, admin bool) error {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	req, err := c.newRequest(ctx, method, path, body, admin)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, admin bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if admin && c.config.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AdminToken)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	logger.Debug("Permit API request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	return resp, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}
	if out == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func readError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var errBody errorBody
	if err := json.Unmarshal(body, &errBody); err != nil {
		errBody = errorBody{Message: strings.TrimSpace(string(body))}
	}
	apiErr := newAPIError(resp.StatusCode, errBody)

	logger.Debug("Permit API error", map[string]interface{}{
		"status":  resp.StatusCode,
		"code":    apiErr.Code,
		"message": apiErr.Message,
	})
	return apiErr
}
