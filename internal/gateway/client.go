package gateway

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RelayClient forwards validated requests to the ShareIt backend and copies
// the response back verbatim, error bodies included.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

func NewRelayClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *RelayClient {
	return &RelayClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Forward relays the request with method, path, query, headers and body
// preserved. body may be nil when the original body was not consumed.
func (c *RelayClient) Forward(w http.ResponseWriter, r *http.Request, body []byte) {
	target := c.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else if r.Body != nil {
		reader = r.Body
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, reader)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build backend request")
		return
	}
	req.Header = r.Header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("target", target).Msg("backend request failed")
		writeError(w, http.StatusBadGateway, "backend unavailable")
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		c.logger.Warn().Err(err).Msg("copy backend response")
	}
}
