package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	mem "payledger/pkg/memcache"
	"payledger/pkg/utils"
)

const (
	IdempotencyKeyHeader  = "Idempotency-Key"
	IdempotencyReplayed   = "Idempotent-Replayed"
	maxIdempotencyKeySize = 255
)

// IdempotencyMiddleware replays the stored response when a write is retried
// with the same Idempotency-Key. Keys are scoped to the caller and route.
// Server errors are not stored so the client can retry them.
func IdempotencyMiddleware(store mem.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeySize {
			utils.HandleServiceError(c, utils.Invalid("Idempotency-Key is too long"))
			c.Abort()
			return
		}

		scoped := strings.Join([]string{c.GetString(ContextUserID), c.Request.Method, c.FullPath(), key}, "|")

		cached, found, inFlight := store.Begin(scoped, ttl)
		if found {
			c.Header(IdempotencyReplayed, "true")
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}
		if inFlight {
			utils.HandleServiceError(c, utils.Conflict("A request with this Idempotency-Key is already in progress"))
			c.Abort()
			return
		}

		completed := false
		defer func() {
			if !completed {
				store.Release(scoped)
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if recorder.Status() >= http.StatusInternalServerError {
			return
		}
		store.Complete(scoped, mem.CachedResponse{
			Status:      recorder.Status(),
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		completed = true
	}
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
