package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/face-kiosk/internal/registry"
)

func TestProxyRecognize_Passthrough(t *testing.T) {
	upstreamBody := `{"ok":true,"result":[{"rect":[10,20,100,120],"name":"Alice","confidence":42.5}],"threshold":80.0}`
	var receivedBody string
	server := setupMockUpstream(t, map[string]http.HandlerFunc{
		"/recognize": func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			receivedBody = string(b)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(upstreamBody))
		},
	})
	defer server.Close()

	h := NewProxyHandler(createVisionClient(t, server.URL))

	req := httptest.NewRequest(http.MethodPost, "/cv/recognize",
		strings.NewReader(`{"image_base64":"abc","threshold":70}`))
	rec := httptest.NewRecorder()
	h.Recognize(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	if rec.Body.String() != upstreamBody {
		t.Errorf("expected upstream body relayed verbatim, got %s", rec.Body.String())
	}
	if receivedBody != `{"image_base64":"abc","threshold":70}` {
		t.Errorf("expected request body forwarded verbatim, got %s", receivedBody)
	}
}

func TestProxyRegister_RelaysUpstreamError(t *testing.T) {
	server := setupMockUpstream(t, map[string]http.HandlerFunc{
		"/register": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"未检测到人脸"}`))
		},
	})
	defer server.Close()

	h := NewProxyHandler(createVisionClient(t, server.URL))

	req := httptest.NewRequest(http.MethodPost, "/cv/register",
		strings.NewReader(`{"name":"Alice","image_base64":["x"]}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	// Upstream status and body pass through unchanged, including errors.
	assertStatusCode(t, rec, http.StatusBadRequest)
	if !strings.Contains(rec.Body.String(), "未检测到人脸") {
		t.Errorf("expected upstream error body relayed, got %s", rec.Body.String())
	}
}

func TestProxyPeople_Passthrough(t *testing.T) {
	server := setupMockUpstream(t, map[string]http.HandlerFunc{
		"/people": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			w.Write([]byte(`{"people":["Alice"]}`))
		},
	})
	defer server.Close()

	h := NewProxyHandler(createVisionClient(t, server.URL))

	req := httptest.NewRequest(http.MethodGet, "/cv/people", nil)
	rec := httptest.NewRecorder()
	h.People(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	if rec.Body.String() != `{"people":["Alice"]}` {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestProxyTrain_Passthrough(t *testing.T) {
	server := setupMockUpstream(t, map[string]http.HandlerFunc{
		"/train": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok":true,"samples":12}`))
		},
	})
	defer server.Close()

	h := NewProxyHandler(createVisionClient(t, server.URL))

	req := httptest.NewRequest(http.MethodPost, "/cv/train", nil)
	rec := httptest.NewRecorder()
	h.Train(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"samples":12`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestProxy_UnreachableUpstreamIs502(t *testing.T) {
	server := setupMockUpstream(t, nil)
	url := server.URL
	server.Close() // free the port so the dial fails

	// A registry sitting next to the proxy must stay untouched by relay
	// failures; the /cv handlers never reference it at all.
	store := registry.NewMemoryStore()
	store.Upsert("Alice", []float64{1})

	h := NewProxyHandler(createVisionClient(t, url))

	req := httptest.NewRequest(http.MethodPost, "/cv/recognize",
		strings.NewReader(`{"image_base64":"abc"}`))
	rec := httptest.NewRecorder()
	h.Recognize(rec, req)

	assertStatusCode(t, rec, http.StatusBadGateway)

	var resp struct {
		OK     bool   `json:"ok"`
		Detail string `json:"detail"`
	}
	parseJSONResponse(t, rec, &resp)
	if resp.OK {
		t.Error("expected ok:false")
	}
	if resp.Detail == "" {
		t.Error("expected a human-readable detail message")
	}

	people, _ := store.List()
	if len(people) != 1 {
		t.Errorf("expected registry untouched, got %d records", len(people))
	}
}
