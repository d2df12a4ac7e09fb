package netwrk

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// LoggingRoundTripper tags each request with an id and logs its outcome.
type LoggingRoundTripper struct {
	rt http.RoundTripper
}

func NewLoggingRoundTripper(rt http.RoundTripper) *LoggingRoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &LoggingRoundTripper{rt: rt}
}

func (l *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	id := req.Header.Get(RequestIDHeader)

	start := time.Now()
	log.Debug().Str("id", id).Str("method", req.Method).Stringer("url", req.URL).Msg("http request")
	resp, err := l.rt.RoundTrip(req)
	if err != nil {
		log.Warn().Err(err).Str("id", id).Stringer("url", req.URL).Dur("took", time.Since(start)).Msg("http request failed")
		return nil, err
	}
	log.Debug().Str("id", id).Int("status", resp.StatusCode).Stringer("url", req.URL).Dur("took", time.Since(start)).Msg("http response")
	return resp, nil
}
