package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderRequestID  = "Ax-Request-Id"
	HeaderRequestAt  = "Ax-Request-At"
	HeaderReplayed   = "Ax-Idempotent-Replay"
	inFlightLockTTL  = 60 * time.Second
	maxClockSkew     = 10 * time.Minute
	storeCallTimeout = 2 * time.Second
)

// respRecorder tees the handler's response so it can be stored for replay.
type respRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *respRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func reject(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"message": msg})
}

// IdempotencyMiddleware makes mutating ledger calls safe to retry. A request
// is identified by method, route, caller and Ax-Request-Id; a finished non-5xx
// response is replayed verbatim for the result TTL, a concurrent duplicate is
// rejected with 409. Must run after JWTAuth. Ax-Request-At is optional and,
// when present, must be within maxClockSkew of the server clock.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	store := &replayStore{rdb: rdb, lockTTL: inFlightLockTTL, resultTTL: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			userID, ok := UserID(c)
			if !ok {
				return reject(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return reject(c, http.StatusBadRequest, "missing "+HeaderRequestID)
			}
			if !validRequestID(reqID) {
				return reject(c, http.StatusBadRequest, "invalid "+HeaderRequestID+" format")
			}

			var reqAtMS int64
			if raw := strings.TrimSpace(req.Header.Get(HeaderRequestAt)); raw != "" {
				at, err := parseRequestAt(raw)
				if err != nil {
					return reject(c, http.StatusBadRequest, err.Error())
				}
				if !withinSkew(at, time.Now().UTC(), maxClockSkew) {
					return reject(c, http.StatusBadRequest, HeaderRequestAt+" too skewed")
				}
				reqAtMS = at.UnixMilli()
			}

			var body []byte
			if req.Body != nil {
				b, err := io.ReadAll(req.Body)
				if err != nil {
					log.Warn("idempotency read body failed", zap.Error(err))
					return reject(c, http.StatusBadRequest, "invalid body")
				}
				body = b
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			key := replayKey(req.Method, c.Path(), userID, reqID)
			entry := replayEntry{
				InProgress:  true,
				BodySHA256:  sha256Hex(body),
				RequestAtMS: reqAtMS,
				CreatedAt:   time.Now().UTC(),
			}

			ctx, cancel := context.WithTimeout(req.Context(), storeCallTimeout)
			defer cancel()

			reserved, err := store.reserve(ctx, key, entry)
			if err != nil {
				log.Error("idempotency reserve failed", zap.String("key", key), zap.Error(err))
				return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !reserved {
				cur, err := store.load(ctx, key)
				if err != nil {
					log.Warn("idempotency load failed", zap.String("key", key), zap.Error(err))
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != entry.BodySHA256 {
					return reject(c, http.StatusConflict, HeaderRequestID+" reused with different body")
				}
				if cur.replayable() {
					c.Response().Header().Set(HeaderReplayed, "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return reject(c, http.StatusConflict, "request is already in progress")
			}

			rec := &respRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the handler may outlive the request context; store calls get their own
			bg, done := context.WithTimeout(context.Background(), storeCallTimeout)
			defer done()

			if rec.code >= http.StatusInternalServerError {
				if err := store.release(bg, key); err != nil {
					log.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
				}
				return nil
			}

			entry.Code = rec.code
			entry.Body = rec.buf.Bytes()
			entry.CreatedAt = time.Now().UTC()
			if err := store.commit(bg, key, entry); err != nil {
				log.Warn("idempotency commit failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
