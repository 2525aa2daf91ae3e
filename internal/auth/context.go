package auth

import "context"

type contextKey string

const claimsKey contextKey = "kluska-auth-claims"

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// AthleteID returns the authenticated athlete, or "" for anonymous requests.
func AthleteID(ctx context.Context) string {
	if claims, ok := FromContext(ctx); ok {
		return claims.AthleteID
	}
	return ""
}
