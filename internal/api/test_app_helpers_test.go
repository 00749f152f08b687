package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/db"
	"github.com/terraincognita07/healthlog/internal/security"
	"github.com/terraincognita07/healthlog/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type stubReportRenderer struct{}

func (stubReportRenderer) Render(document services.ReportDocument) ([]byte, error) {
	return []byte("%PDF-1.3 " + document.Title), nil
}

type testApp struct {
	app       *fiber.App
	handler   *Handler
	crypto    *security.CryptoStore
	database  *gorm.DB
	exportDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "healthlog-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	sealed, err := security.NewSealedStore(repos.Settings, []byte(testSecretKey))
	if err != nil {
		t.Fatalf("init sealed store: %v", err)
	}
	crypto := security.NewCryptoStore(sealed)
	settings := services.NewSettingsService(repos.Settings)
	exportDir := filepath.Join(t.TempDir(), "exports")
	exports := services.NewExportService(repos, stubReportRenderer{}, crypto, settings, exportDir, time.UTC)

	worker := services.NewExportWorker(exports, 1, 4)
	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	t.Cleanup(func() {
		cancel()
		worker.Close()
	})

	handler, err := NewHandler(Dependencies{
		Records:   services.NewRecordService(repos.Diet, repos.Exercise, repos.Sleep, time.UTC),
		Stats:     services.NewStatsService(repos),
		Exports:   exports,
		Worker:    worker,
		Passwords: services.NewPasswordService(crypto),
		Settings:  settings,
		SecretKey: testSecretKey,
		Location:  time.UTC,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, crypto: crypto, database: database, exportDir: exportDir}
}

func (ta *testApp) do(t *testing.T, method string, path string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
}

type apiErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func readAPIError(t *testing.T, response *http.Response) apiErrorBody {
	t.Helper()
	payload := apiErrorBody{}
	decodeJSON(t, response, &payload)
	return payload
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func (ta *testApp) setPassword(t *testing.T, password string) string {
	t.Helper()
	response := ta.do(t, http.MethodPut, "/api/password", fiber.Map{
		"password":         password,
		"confirm_password": password,
	})
	expectStatus(t, response, http.StatusOK)

	payload := struct {
		Token string `json:"token"`
	}{}
	decodeJSON(t, response, &payload)
	if payload.Token == "" {
		t.Fatal("expected session token after setting the password")
	}
	return payload.Token
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}
