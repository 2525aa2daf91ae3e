package test

import (
	"context"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secretTransport struct {
	secret string
	next   http.RoundTripper
}

func (t *secretTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-MCP-Secret", t.secret)
	return t.next.RoundTrip(req)
}

func (s *IntegrationTestSuite) TestMCP_OverHTTP() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	resp, err := s.httpClient.Post(serverEndpoint+"/mcp", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
		HTTPClient: &http.Client{
			Transport: &secretTransport{secret: testSecret, next: http.DefaultTransport},
		},
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_training_context"})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "## personal_record")
	assert.Contains(t, text.Text, "## challenge")

	athleteID, _ := s.newAthlete()
	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_progress",
		Arguments: map[string]any{"athlete_id": athleteID, "period": "all"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
