package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ikrystian/kluska/internal/auth"
)

// newAthlete returns a fresh athlete id and a bearer token for it.
func (s *IntegrationTestSuite) newAthlete() (string, string) {
	athleteID := uuid.NewString()
	token, err := auth.Issue(testJWTConfig, athleteID, time.Hour, time.Now())
	require.NoError(s.T(), err)
	return athleteID, token
}

// do sends a JSON request and decodes a JSON response into out (when not nil).
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body, out any) int {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.Unmarshal(respBytes, out), string(respBytes))
	}
	return resp.StatusCode
}
