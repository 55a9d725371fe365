package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

func newTestServer(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(zerolog.Nop())

	svc, _ := newTestService()
	NewHandler(svc).RegisterRoutes(e.Group("/api"))
	return e, svc
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{"name":"Asha Rao","email":"asha@example.com","password":"hunter22",
		"dob":"1990-04-12","gender":"female","height":165,"weight":58,
		"bloodGroup":"O+","allergies":["penicillin"]}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token == "" || resp.Email != "asha@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hunter22") {
		t.Error("response leaks the password")
	}
}

func TestRegisterEndpoint_DuplicateIs400(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{"name":"Asha","email":"asha@example.com","password":"hunter22"}`
	if rec := doJSON(e, http.MethodPost, "/api/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("setup: %d", rec.Code)
	}
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate email, got %d", rec.Code)
	}
}

func TestRegisterEndpoint_BadDOB(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{"name":"Asha","email":"asha@example.com","password":"hunter22","dob":"12/04/1990"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed dob, got %d", rec.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	register := `{"name":"Asha","email":"asha@example.com","password":"hunter22"}`
	if rec := doJSON(e, http.MethodPost, "/api/auth/register", register, ""); rec.Code != http.StatusCreated {
		t.Fatalf("setup: %d", rec.Code)
	}

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"hunter22"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"nope"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong password, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Errorf("expected bad-credentials message, got %s", rec.Body.String())
	}
}

func TestInfoEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	register := `{"name":"Asha","email":"asha@example.com","password":"hunter22","bloodGroup":"O+"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", register, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup: %d", rec.Code)
	}
	var auth AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &auth); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec = doJSON(e, http.MethodGet, "/api/auth/info", "", auth.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("profile response leaks password hash")
	}
	if !strings.Contains(rec.Body.String(), `"bloodGroup":"O+"`) {
		t.Errorf("profile missing demographics: %s", rec.Body.String())
	}
}

func TestInfoEndpoint_RequiresToken(t *testing.T) {
	e, _ := newTestServer(t)

	if rec := doJSON(e, http.MethodGet, "/api/auth/info", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/api/auth/info", "", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %d", rec.Code)
	}
}
