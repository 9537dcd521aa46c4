// Package vision is the client for the external vision service that performs
// the actual face detection and recognition. This layer never interprets
// descriptors or rectangles, it only transports them.
package vision

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable marks a connection-level failure talking to the vision
// service (refused, reset, timed out). Callers translate it to a 502.
var ErrUnavailable = errors.New("vision service unavailable")

// Client represents a client for the vision service API.
type Client struct {
	URL       string
	parsedURL *url.URL
	http      *http.Client
}

// NewClient creates a vision service client for the given base URL.
func NewClient(rawURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid vision service URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid vision service URL %q: scheme and host required", rawURL)
	}
	return &Client{
		URL:       rawURL,
		parsedURL: parsed,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// resolveURL builds a full URL from the base URL and the given path segments.
// If the last segment contains a query string, it is split so JoinPath only
// receives the path portion and the query is appended.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// Detection is one recognized face. Rect is x, y, width, height in pixel
// coordinates of the frame that was sent; the caller owns any rescaling.
type Detection struct {
	Rect       [4]int   `json:"rect"`
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence"` // nil when the upstream model is untrained
}

// PeopleResponse is the upstream answer to GET /people.
type PeopleResponse struct {
	People []string `json:"people"`
}

// RegisterResponse is the upstream answer to POST /register.
type RegisterResponse struct {
	OK    bool     `json:"ok"`
	Saved []string `json:"saved"`
}

// RecognizeResponse is the upstream answer to POST /recognize.
type RecognizeResponse struct {
	OK        bool        `json:"ok"`
	Result    []Detection `json:"result"`
	Threshold float64     `json:"threshold"`
}

// TrainResponse is the upstream answer to POST /train.
type TrainResponse struct {
	OK      bool `json:"ok"`
	Samples int  `json:"samples"`
}

// People lists the names known to the vision service.
func (c *Client) People() (*PeopleResponse, error) {
	return doGetJSON[PeopleResponse](c, "people")
}

// Register submits one or more base64-encoded face images for a name.
// The upstream retrains itself in the background after saving the samples.
func (c *Client) Register(name string, images []string) (*RegisterResponse, error) {
	return doPostJSON[RegisterResponse](c, "register", map[string]any{
		"name":         name,
		"image_base64": images,
	})
}

// Recognize submits a single base64-encoded frame. A nil threshold lets the
// upstream apply its own default.
func (c *Client) Recognize(imageBase64 string, threshold *float64) (*RecognizeResponse, error) {
	body := map[string]any{"image_base64": imageBase64}
	if threshold != nil {
		body["threshold"] = *threshold
	}
	return doPostJSON[RecognizeResponse](c, "recognize", body)
}

// Train asks the vision service to rebuild its model from stored samples.
func (c *Client) Train() (*TrainResponse, error) {
	return doPostJSON[TrainResponse](c, "train", nil)
}
