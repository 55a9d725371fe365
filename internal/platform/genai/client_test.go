package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

func fakeService(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, "test-key", 2*time.Second)
}

func TestComplete_ExtractsText(t *testing.T) {
	var gotBody generateRequest
	_, client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("x-goog-api-key"))
		}
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query parameters, got %q", r.URL.RawQuery)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "Viral infection | Rest and fluids"}},
				}},
			},
		})
	})

	got, err := client.Complete(context.Background(), "identify the cause", "headache, fever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Viral infection | Rest and fluids" {
		t.Errorf("unexpected completion: %q", got)
	}

	sent := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(sent, "identify the cause") || !strings.Contains(sent, "headache, fever") {
		t.Errorf("prompt and context missing from request text: %q", sent)
	}
}

func TestComplete_Non2xxIsUpstream(t *testing.T) {
	_, client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "prompt", "")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !apperr.IsKind(err, apperr.KindUpstream) {
		t.Errorf("expected upstream kind, got %s", apperr.KindOf(err))
	}
}

func TestComplete_EmptyCandidatesIsError(t *testing.T) {
	_, client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Complete(context.Background(), "prompt", "")
	if err == nil {
		t.Fatal("expected error for empty candidates, not empty text")
	}
	if !apperr.IsKind(err, apperr.KindUpstream) {
		t.Errorf("expected upstream kind, got %s", apperr.KindOf(err))
	}
}

func TestComplete_MalformedBodyIsError(t *testing.T) {
	_, client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Complete(context.Background(), "prompt", "")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestComplete_NetworkFailureIsUpstream(t *testing.T) {
	srv, client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Complete(context.Background(), "prompt", "")
	if err == nil {
		t.Fatal("expected error when service is unreachable")
	}
	if !apperr.IsKind(err, apperr.KindUpstream) {
		t.Errorf("expected upstream kind, got %s", apperr.KindOf(err))
	}
	// Transport errors quote the request URL; the key must not be in it.
	if strings.Contains(err.Error(), "test-key") {
		t.Errorf("api key leaked into error message: %v", err)
	}
}

func TestComplete_HonorsContextCancellation(t *testing.T) {
	_, client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client going away;
		// otherwise this handler never unblocks and shutdown hangs.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "prompt", "")
	if err == nil {
		t.Fatal("expected error when context deadline expires")
	}
}
