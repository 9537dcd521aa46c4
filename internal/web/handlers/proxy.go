package handlers

import (
	"errors"
	"net/http"

	"github.com/kozaktomas/face-kiosk/internal/vision"
)

// ProxyHandler relays /cv requests to the vision service unchanged. It never
// validates or caches upstream payloads and never retries.
type ProxyHandler struct {
	upstream *vision.Client
}

// NewProxyHandler creates a relay handler for the given upstream client.
func NewProxyHandler(upstream *vision.Client) *ProxyHandler {
	return &ProxyHandler{upstream: upstream}
}

// relay forwards the incoming request body to the upstream endpoint and
// writes status and body back verbatim. Connection failures become a 502 with
// a detail message, anything else a 500.
func (h *ProxyHandler) relay(w http.ResponseWriter, r *http.Request, method, endpoint string) {
	var body = r.Body
	if r.Method == http.MethodGet {
		body = nil
	}

	reply, err := h.upstream.Forward(r.Context(), method, endpoint, body)
	if err != nil {
		if errors.Is(err, vision.ErrUnavailable) {
			respondDetail(w, http.StatusBadGateway, err.Error())
			return
		}
		respondDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	contentType := reply.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(reply.StatusCode)
	w.Write(reply.Body)
}

// Register relays POST /cv/register to the upstream /register.
func (h *ProxyHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, http.MethodPost, "register")
}

// Recognize relays POST /cv/recognize to the upstream /recognize.
func (h *ProxyHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, http.MethodPost, "recognize")
}

// People relays GET /cv/people to the upstream /people.
func (h *ProxyHandler) People(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, http.MethodGet, "people")
}

// Train relays POST /cv/train to the upstream /train.
func (h *ProxyHandler) Train(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, http.MethodPost, "train")
}
