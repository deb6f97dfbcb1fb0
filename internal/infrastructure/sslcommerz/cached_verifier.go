package sslcommerz

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/cache"
)

// CachedVerifier wraps a GatewayVerifier with a short-TTL per-token verdict
// cache. Gateways redeliver callbacks and browsers replay success URLs;
// when two replays race past the terminal-status check, the cache keeps the
// second one from hitting the validator again. Only definitive verdicts are
// cached; an indeterminate validator call must stay retryable.
type CachedVerifier struct {
	next  domain.GatewayVerifier
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedVerifier(next domain.GatewayVerifier, c cache.Cache, ttl time.Duration) *CachedVerifier {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedVerifier{next: next, cache: c, ttl: ttl}
}

func (v *CachedVerifier) Validate(ctx context.Context, valID string) (*domain.Verdict, error) {
	key := v.cache.GenerateKey("verdict", valID)

	if cached, err := v.cache.Get(ctx, key); err == nil && cached != "" {
		var verdict domain.Verdict
		if err := json.Unmarshal([]byte(cached), &verdict); err == nil {
			return &verdict, nil
		}
	}

	verdict, err := v.next.Validate(ctx, valID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(verdict); err == nil {
		if err := v.cache.Set(ctx, key, string(encoded), v.ttl); err != nil {
			slog.Warn("verdict cache write failed", "val_id", valID, "error", err.Error())
		}
	}

	return verdict, nil
}
