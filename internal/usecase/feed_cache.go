package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"
)

type FeedCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

func FeedCacheKey(applicationID string, limit int) string {
	return "ats:feed:" + strings.ToLower(strings.TrimSpace(applicationID)) + ":limit=" + strconv.Itoa(limit)
}
