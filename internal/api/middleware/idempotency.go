package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docstore/docstore-service/internal/api/dto"
	"github.com/docstore/docstore-service/internal/core/cache"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
)

const (
	// IdempotencyKeyHeader lets a client retry a write without repeating it.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks a response served from the key store.
	IdempotentReplayHeader = "Idempotent-Replayed"

	idempotencyKeyPrefix = "idempotency:"
)

// storedResponse is what the key store holds for one key. A zero Status
// marks a request that is still running.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// IdempotencyMiddleware replays the stored response of a write request when
// the same Idempotency-Key is sent again.
type IdempotencyMiddleware struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates the middleware. A nil cache disables it.
func NewIdempotencyMiddleware(c cache.Cache, ttl time.Duration) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{cache: c, ttl: ttl}
}

// Handler returns the gin middleware.
func (m *IdempotencyMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(IdempotencyKeyHeader)
		if m.cache == nil || header == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := GetRequestLogger(c)
		key := idempotencyKeyPrefix + c.Request.Method + ":" + c.Request.URL.Path + ":" + header

		if data, err := m.cache.Get(ctx, key); err != nil {
			logger.Warn().Err(err).Msg("idempotency store unavailable, processing request without it")
			c.Next()
			return
		} else if data != nil {
			m.replay(c, data)
			return
		}

		pending, _ := json.Marshal(storedResponse{})
		reserved, err := m.cache.SetNX(ctx, key, pending, m.ttl)
		if err != nil {
			logger.Warn().Err(err).Msg("idempotency store unavailable, processing request without it")
			c.Next()
			return
		}
		if !reserved {
			m.inProgress(c)
			return
		}

		// Release the key when the handler panics.
		completed := false
		defer func() {
			if completed {
				return
			}
			if _, err := m.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
				logger.Warn().Err(err).Msg("failed to release idempotency key")
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()
		completed = true

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			if _, err := m.cache.Delete(ctx, key); err != nil {
				logger.Warn().Err(err).Msg("failed to release idempotency key")
			}
			return
		}

		data, _ := json.Marshal(storedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		if err := m.cache.Set(ctx, key, data, m.ttl); err != nil {
			logger.Warn().Err(err).Msg("failed to store idempotent response")
		}
	}
}

func (m *IdempotencyMiddleware) replay(c *gin.Context, data []byte) {
	var stored storedResponse
	if err := json.Unmarshal(data, &stored); err != nil {
		HandleError(c, domainerrors.NewInternalError("corrupt idempotency record", err))
		return
	}
	if stored.Status == 0 {
		m.inProgress(c)
		return
	}

	c.Header(IdempotentReplayHeader, "true")
	c.Data(stored.Status, stored.ContentType, stored.Body)
	c.Abort()
}

func (m *IdempotencyMiddleware) inProgress(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusConflict, dto.ErrorResponse{
		Code:    domainerrors.ErrCodeConflict,
		Message: "a request with this idempotency key is in progress",
		Details: c.GetHeader(IdempotencyKeyHeader),
	})
}

// bodyRecorder copies the response body while it is written.
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
