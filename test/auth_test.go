package test

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikrystian/kluska/internal/auth"
)

func (s *IntegrationTestSuite) TestAuth_LogoutRevokesToken() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	_, token := s.newAthlete()

	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/challenges", token, nil, nil))
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(ctx, http.MethodGet, "/challenges", token, nil, nil))

	// other tokens are unaffected
	_, other := s.newAthlete()
	assert.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/challenges", other, nil, nil))
}

func (s *IntegrationTestSuite) TestAuth_RejectsForeignTokens() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token, err := auth.Issue(auth.Config{Secret: "someone-else", Issuer: testJWTConfig.Issuer}, "athlete-x", time.Hour, time.Now())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), http.StatusUnauthorized, s.do(ctx, http.MethodGet, "/records", token, nil, nil))
	assert.Equal(s.T(), http.StatusUnauthorized, s.do(ctx, http.MethodGet, "/records", "", nil, nil))
}
