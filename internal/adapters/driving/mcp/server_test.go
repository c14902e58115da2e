package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil codebook service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCodebookService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Codebook: &mockCodebookService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("annotation port is optional", func(t *testing.T) {
		ports := &Ports{
			Codebook:   &mockCodebookService{},
			Annotation: &mockAnnotationService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil codebook service returns error", func(t *testing.T) {
		ports := &Ports{Annotation: &mockAnnotationService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingCodebookService)
	})

	t.Run("codebook only is valid", func(t *testing.T) {
		ports := &Ports{Codebook: &mockCodebookService{}}
		assert.NoError(t, ports.Validate())
	})
}

func connectTestClient(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestServer_ClientSession(t *testing.T) {
	ctx := context.Background()

	t.Run("codebook tools without annotation port", func(t *testing.T) {
		session := connectTestClient(t, newTestServer(t, &Ports{Codebook: &mockCodebookService{}}))

		assert.Contains(t, session.InitializeResult().Instructions, "ingest_markdown")

		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		names := make([]string, 0, len(tools.Tools))
		for _, tool := range tools.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{
			"sanitize_variable_name", "ingest_markdown", "list_codebook",
			"add_variable", "update_variable", "delete_variable",
		}, names)
	})

	t.Run("annotation port adds save_annotation", func(t *testing.T) {
		session := connectTestClient(t, newTestServer(t, &Ports{
			Codebook:   &mockCodebookService{},
			Annotation: &mockAnnotationService{},
		}))

		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		var found bool
		for _, tool := range tools.Tools {
			found = found || tool.Name == "save_annotation"
		}
		assert.True(t, found)
	})

	t.Run("calls a tool end to end", func(t *testing.T) {
		session := connectTestClient(t, newTestServer(t, &Ports{Codebook: &mockCodebookService{}}))

		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "sanitize_variable_name",
			Arguments: map[string]any{"label": "Power - Dynamics"},
		})

		require.NoError(t, err)
		assert.False(t, res.IsError)
		out, ok := res.StructuredContent.(map[string]any)
		require.True(t, ok, "structured content: %T", res.StructuredContent)
		assert.Equal(t, "power_dynamics", out["variable_name"])
	})
}

func TestServer_RunHTTP(t *testing.T) {
	s := newTestServer(t, &Ports{Codebook: &mockCodebookService{}})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		errc := make(chan error, 1)
		go func() { errc <- s.RunHTTP(ctx, "127.0.0.1:0") }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-errc:
			assert.NoError(t, err)
		case <-time.After(shutdownTimeout + time.Second):
			t.Fatal("RunHTTP did not return after cancel")
		}
	})

	t.Run("reports a bad address", func(t *testing.T) {
		err := s.RunHTTP(context.Background(), "not-an-address")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listening on not-an-address")
	})
}
