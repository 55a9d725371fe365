package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindAuthentication, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindUpstream, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.kind.HTTPStatus(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("calling completion service: %w", Wrap(KindUpstream, "analysis service unavailable", cause))

	if KindOf(err) != KindUpstream {
		t.Errorf("expected upstream kind through wrapping, got %s", KindOf(err))
	}
	if !IsKind(err, KindUpstream) {
		t.Error("expected IsKind to match upstream")
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("expected unclassified errors to be internal")
	}
}

func TestHTTPErrorHandler_ClassifiedError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(New(KindConflict, "user with this email already exists"), c)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "user with this email already exists" {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestHTTPErrorHandler_InternalHidesDetail(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(errors.New("pq: secret connection string leaked"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "internal server error" {
		t.Errorf("internal detail leaked to client: %q", body["message"])
	}
}

func TestHTTPErrorHandler_UpstreamMessageSurfaces(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/gemini/cause", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(Wrap(KindUpstream, "failed to analyze cause", errors.New("status 502")), c)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "failed to analyze cause" {
		t.Errorf("expected client-safe upstream message, got %q", body["message"])
	}
}
