package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cacheRecorder buffers the response body so it can be stored after
// the handler finishes.
type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cr *cacheRecorder) WriteHeader(code int) {
	cr.statusCode = code
	cr.ResponseWriter.WriteHeader(code)
}

func (cr *cacheRecorder) Write(b []byte) (int, error) {
	cr.body.Write(b)
	return cr.ResponseWriter.Write(b)
}

// Cache serves GET responses from Redis. When rdb is nil the
// middleware passes every request straight through.
func Cache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := "cache:" + r.URL.RequestURI()

			cached, err := rdb.Get(r.Context(), key).Bytes()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}
			if err != redis.Nil {
				logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
			}

			rec := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Only successful responses are worth caching
			if rec.statusCode == http.StatusOK && rec.body.Len() > 0 {
				if err := rdb.Set(r.Context(), key, rec.body.Bytes(), ttl).Err(); err != nil {
					logger.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
				}
			}
		})
	}
}
