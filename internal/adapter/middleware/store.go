package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"p2p-lending-backend/pkg/id"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "p2p:idemp:"

// replayEntry is what a request id maps to: an in-flight marker first, then
// the recorded response once the handler has finished.
type replayEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code,omitempty"`
	Body        []byte    `json:"body,omitempty"`
	BodySHA256  string    `json:"body_sha256"`
	RequestAtMS int64     `json:"request_at_ms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e replayEntry) replayable() bool {
	return !e.InProgress && e.Code != 0 && len(e.Body) > 0
}

type replayStore struct {
	rdb       *redis.Client
	lockTTL   time.Duration
	resultTTL time.Duration
}

// replayKey scopes a request id to the caller and the route pattern.
func replayKey(method, route string, userID uint64, requestID string) string {
	return keyPrefix + strings.ToLower(method) + ":" + route + ":u" + strconv.FormatUint(userID, 10) + ":" + requestID
}

// reserve claims key for an in-flight request. false means someone already holds it.
func (s *replayStore) reserve(ctx context.Context, key string, e replayEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.lockTTL).Result()
}

func (s *replayStore) load(ctx context.Context, key string) (replayEntry, error) {
	var e replayEntry
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(raw, &e)
	return e, err
}

func (s *replayStore) commit(ctx context.Context, key string, e replayEntry) error {
	e.InProgress = false
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.resultTTL).Err()
}

func (s *replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

var reRequestUUID = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)

// validRequestID accepts a lowercase UUID (v1-v5) or a 32-char lowercase hex id.
func validRequestID(s string) bool {
	return reRequestUUID.MatchString(s) || id.Valid(s)
}

var errRequestAtFormat = errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")

// parseRequestAt reads epoch seconds, epoch milliseconds or RFC3339(Nano)
// with an explicit zone. Zone-less timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errRequestAtFormat
	}
	return t.UTC(), nil
}

// withinSkew reports whether at lies within skew of now.
func withinSkew(at, now time.Time, skew time.Duration) bool {
	return !at.Before(now.Add(-skew)) && !at.After(now.Add(skew))
}
