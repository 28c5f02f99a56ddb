package api

import (
	"net/http"

	"github.com/baitwatch/baitwatch/internal/logging"
	"github.com/google/uuid"
)

// requestTransport wraps http.RoundTripper to add the User-Agent and a request id
type requestTransport struct {
	Transport http.RoundTripper
	UserAgent string
}

func (t *requestTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.UserAgent)

	requestID := req.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		req.Header.Set("X-Request-ID", requestID)
	}

	logging.Debug("API request", "method", req.Method, "url", req.URL.String(), "requestID", requestID)

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	logging.Debug("API response", "url", req.URL.String(), "status", resp.StatusCode, "requestID", requestID)
	return resp, nil
}
