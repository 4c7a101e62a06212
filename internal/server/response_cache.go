package server

import (
	"bytes"
	"net/http"

	"github.com/bbernstein/lunartide/internal/cache"
)

const cacheHeader = "X-Cache"

// cached serves next through the response cache when every one of required
// is present in the query. Requests relying on defaults such as today's date
// or the current location are never cached.
func (s *Server) cached(next http.Handler, required ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.responseCache == nil || !hasAll(r, required) {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.Path + "?" + r.URL.Query().Encode()
		if hit, ok := s.responseCache.Get(r.Context(), key); ok {
			s.metrics.ObserveCacheResult(true)
			w.Header().Set("Content-Type", hit.ContentType)
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set(cacheHeader, "HIT")
			w.WriteHeader(hit.StatusCode)
			_, _ = w.Write(hit.Body)
			return
		}
		s.metrics.ObserveCacheResult(false)

		capture := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set(cacheHeader, "MISS")
		next.ServeHTTP(capture, r)

		s.responseCache.Add(r.Context(), key, cache.CachedResponse{
			StatusCode:  capture.status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
		})
	})
}

func hasAll(r *http.Request, keys []string) bool {
	query := r.URL.Query()
	for _, k := range keys {
		if query.Get(k) == "" {
			return false
		}
	}
	return true
}

// captureWriter tees the response body so it can be cached
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}
