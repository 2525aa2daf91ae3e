package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ikrystian/kluska/internal/telemetry/tracing"
)

const revokedKeyPrefix = "kluska-revoked-token||"

// RevocationList keeps the ids of logged out tokens in redis until the tokens expire.
type RevocationList struct {
	redisClient *redis.Client
	now         func() time.Time
}

func NewRevocationList(redisClient *redis.Client) *RevocationList {
	return &RevocationList{
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (l *RevocationList) Revoke(ctx context.Context, claims *Claims) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.revocation.revoke")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ttl := claims.ExpiresAt.Sub(l.now())
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}

	if err := l.redisClient.Set(ctx, revokedKeyPrefix+claims.TokenID, claims.AthleteID, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.revocation.isRevoked")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = l.redisClient.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}
