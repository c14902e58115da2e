package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/simlab-siue/methodosync/internal/codecs/frontmatter"
	"github.com/simlab-siue/methodosync/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for methodosync resources.
	uriScheme = "methodosync://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "codebook",
		Name:        "codebook",
		Description: "All codebook variables in column order",
		MIMEType:    "application/json",
	}, s.handleCodebookResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "codebook/{rowId}",
		Name:        "codebook-variable",
		Description: "A single codebook variable",
		MIMEType:    "application/json",
	}, s.handleRowResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates/synthesis",
		Name:        "synthesis-template",
		Description: "Bridge template listing identified categories and overarching themes",
		MIMEType:    "text/markdown",
	}, s.handleTemplateResource)

	if s.ports.Annotation != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "session/annotations",
			Name:        "session-annotations",
			Description: "Every annotation of the loaded video as one Markdown document",
			MIMEType:    "text/markdown",
		}, s.handleSessionResource)
	}
}

// handleCodebookResource returns every codebook row.
func (s *Server) handleCodebookResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rows, err := s.ports.Codebook.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing codebook: %w", err)
	}
	if rows == nil {
		rows = []domain.CodebookRow{}
	}
	return jsonResult(req.Params.URI, rows)
}

// handleRowResource returns one codebook row.
func (s *Server) handleRowResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRowID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rows, err := s.ports.Codebook.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing codebook: %w", err)
	}
	for _, r := range rows {
		if r.ID == id {
			return jsonResult(req.Params.URI, r)
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func (s *Server) handleTemplateResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return textResult(req.Params.URI, "text/markdown", frontmatter.SynthesisTemplate), nil
}

// handleSessionResource returns the session export for the loaded video.
func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	markdown, err := s.ports.Annotation.ExportSession(ctx)
	if errors.Is(err, domain.ErrNoVideo) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("exporting session: %w", err)
	}
	return textResult(req.Params.URI, "text/markdown", markdown), nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return textResult(uri, "application/json", string(data)), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractRowID extracts the row ID from a URI like methodosync://codebook/{rowId}.
func extractRowID(uri string) string {
	const prefix = uriScheme + "codebook/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
