package permitclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ wizard.Submitter        = (*Client)(nil)
	_ wizard.RenewalSubmitter = (*Client)(nil)
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/api/v1/"})
	require.NoError(t, err)
	return client, &calls
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewClient(Config{BaseURL: "localhost:8080"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	client, err := NewClient(Config{BaseURL: "http://localhost:8080/api/v1/"})
	require.NoError(t, err)
	cfg := client.GetConfig()
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, validation.MaxUploadSize, cfg.MaxUploadSize)
}

func TestClient_SubmitApplication(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/applications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var form model.ApplicationForm
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		assert.Equal(t, "Santos Bakery", form.BusinessInfo.BusinessTradeName)

		writeJSON(w, http.StatusOK, model.SubmissionResult{
			Success:         true,
			Message:         "Application submitted successfully",
			ApplicationID:   "app-1",
			BusinessPlateNo: "2024-00042",
		})
	})

	form := testutil.ValidForm()
	result, err := client.SubmitApplication(context.Background(), &form)

	require.NoError(t, err)
	assert.Equal(t, "app-1", result.ApplicationID)
	assert.Equal(t, "2024-00042", result.BusinessPlateNo)
}

func TestClient_ModifyAndRenewSendKeys(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/api/v1/applications/modify":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "app-1", body["applicationId"])
		case "/api/v1/applications/renew":
			assert.Equal(t, "BAN-2024-000001", body["businessAccountNo"])
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		assert.Contains(t, body, "taxpayerInfo")
		writeJSON(w, http.StatusOK, model.SubmissionResult{Success: true, ApplicationID: "app-1"})
	})

	form := testutil.ValidForm()
	_, err := client.ModifyApplication(context.Background(), "app-1", &form)
	require.NoError(t, err)
	_, err = client.RenewApplication(context.Background(), "BAN-2024-000001", &form)
	require.NoError(t, err)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     interface{}
		sentinel error
		message  string
	}{
		{"coded not found", http.StatusNotFound, map[string]string{"error": "APPLICATION_NOT_FOUND", "message": "Application not found"}, ErrNotFound, "Application not found"},
		{"bare error message", http.StatusInternalServerError, map[string]string{"error": "Database error"}, ErrServer, "Database error"},
		{"validation list", http.StatusBadRequest, map[string]interface{}{"error": "VALIDATION_INVALID_INPUT", "message": "Taxpayer name is required", "errors": []string{"Taxpayer name is required"}}, ErrInvalidRequest, "Taxpayer name is required"},
		{"empty body", http.StatusBadGateway, nil, ErrServer, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Track(context.Background(), "app-1")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Error())
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)
	server.Close()

	_, err = client.Track(context.Background(), "app-1")
	assert.ErrorIs(t, err, ErrNetworkError)
}

func TestClient_UploadRejectsBeforeNetwork(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, UploadResult{Success: true})
	})

	tests := []struct {
		name        string
		size        int64
		contentType string
		want        error
	}{
		{"12 MB pdf", 12 * 1024 * 1024, "application/pdf", validation.ErrFileTooLarge},
		{"text file", 10, "text/plain", validation.ErrInvalidFileType},
		{"empty file", 0, "application/pdf", validation.ErrEmptyFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Upload(context.Background(), "doc", bytes.NewReader(nil), tt.size, tt.contentType, false)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestClient_UploadFile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/upload-test", r.URL.Path)
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-1.4", string(data))
		assert.Equal(t, "permit.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

		writeJSON(w, http.StatusOK, UploadResult{
			Success:  true,
			Message:  "File uploaded successfully",
			FileName: "test/1-permit.pdf",
			Path:     "test/1-permit.pdf",
			URL:      "https://files.example.test/test/1-permit.pdf",
		})
	})

	path := filepath.Join(t.TempDir(), "permit.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	result, err := client.UploadFile(context.Background(), path, true)

	require.NoError(t, err)
	assert.Equal(t, "test/1-permit.pdf", result.Path)
	assert.NotEmpty(t, result.URL)
}

func TestClient_AdminSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/admin/login" {
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "token": "tok-1"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "AUTH_UNAUTHORIZED", "message": "Authentication required"})
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/admin/applications":
			assert.Equal(t, "santos bakery", r.URL.Query().Get("search"))
			writeJSON(w, http.StatusOK, ApplicationList{
				Applications: []model.ApplicationSummary{{BusinessTradeName: "Santos Bakery"}},
				Stats:        model.ApplicationStats{Total: 3, Processing: 3},
			})
		case r.Method == http.MethodDelete:
			assert.Equal(t, "app-1", r.URL.Query().Get("id"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Application deleted successfully"})
		case r.URL.Path == "/api/v1/admin/applications/export":
			_, _ = w.Write([]byte("xlsx-bytes"))
		case r.URL.Path == "/api/v1/admin/logout":
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	_, err := client.ListApplications(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := client.Login(ctx, "staff-only")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	list, err := client.ListApplications(ctx, "santos bakery")
	require.NoError(t, err)
	assert.Equal(t, 3, list.Stats.Total)
	require.Len(t, list.Applications, 1)

	require.NoError(t, client.DeleteApplication(ctx, "app-1"))

	var buf bytes.Buffer
	require.NoError(t, client.ExportApplications(ctx, "", &buf))
	assert.Equal(t, "xlsx-bytes", buf.String())

	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, client.GetConfig().AdminToken)
}

func TestClient_DrivesWizardSubmit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.SubmissionResult{Success: true, ApplicationID: "app-9"})
	})

	form := testutil.ValidForm()
	w := wizard.New()
	w.SetTaxpayer(form.TaxpayerInfo)
	require.True(t, w.Next())
	w.SetBusiness(form.BusinessInfo)
	require.True(t, w.Next())
	w.SetApplicationDetails(form.ApplicationInfo)
	require.True(t, w.Next())
	w.SetOfficeReviews(form.OfficeReviews)

	require.NoError(t, w.Submit(context.Background(), client))
	assert.Equal(t, "app-9", w.ApplicationID)
}
