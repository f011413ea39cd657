package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	idempotencyCacheKey = "idempotency_cache_key"
	idempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

var ErrIdempotencyInFlight = apperror.New(
	"PROCESSING",
	"The same request is still being processed",
	http.StatusConflict,
)

// storedResult is what a completed request leaves in redis for replay.
type storedResult struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Idempotency replays the stored result of a POST already completed under
// the same Idempotency-Key, and rejects a duplicate that is still running.
// Handlers finish the cycle with CompleteIdempotent.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.Request.URL.Path, c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var stored storedResult
			if err := json.Unmarshal(val, &stored); err == nil && stored.Status != 0 {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, stored.Status, stored.Data, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// redis down: run the request without protection
			c.Next()
			return
		}
		if !isNew {
			response.AbortWithError(c, ErrIdempotencyInFlight)
			return
		}

		c.Set(idempotencyCacheKey, cacheKey)
		c.Set(idempotencyLockKey, lockKey)

		c.Next()
	}
}

// CompleteIdempotent releases the lock taken by Idempotency and, when data
// is not nil, stores it with the status already written so a replay answers
// the same way. Call it after the response is written.
func CompleteIdempotent(c *gin.Context, rdb *redis.Client, data any) {
	if rdb == nil {
		return
	}
	ctx := c.Request.Context()

	if lk := c.GetString(idempotencyLockKey); lk != "" {
		defer rdb.Del(ctx, lk)
	}
	ck := c.GetString(idempotencyCacheKey)
	if ck == "" || data == nil {
		return
	}
	body, err := json.Marshal(data)
	if err != nil {
		return
	}
	payload, err := json.Marshal(storedResult{Status: c.Writer.Status(), Data: body})
	if err != nil {
		return
	}
	_ = rdb.Set(ctx, ck, payload, idempotencyResultTTL).Err()
}
