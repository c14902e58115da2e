package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// SanitizeInput is the input schema for the sanitize_variable_name tool.
type SanitizeInput struct {
	Label string `json:"label" jsonschema:"category label, optionally wrapped as [[wiki link]]"`
}

// SanitizeOutput is the output schema for the sanitize_variable_name tool.
type SanitizeOutput struct {
	VariableName string `json:"variable_name"`
}

// IngestInput is the input schema for the ingest_markdown tool.
type IngestInput struct {
	Filename string `json:"filename,omitempty" jsonschema:"name to record the document under (default pasted-content.md)"`
	Content  string `json:"content" jsonschema:"Markdown text starting with YAML frontmatter"`
}

// ChangeOutput reports the outcome of a state-changing tool.
type ChangeOutput struct {
	Messages  []string     `json:"messages"`
	Variables int          `json:"variables"`
	Failed    []FileOutput `json:"failed,omitempty"`
}

// FileOutput describes a parsed document that could not be decoded.
type FileOutput struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ListInput is the input schema for the list_codebook tool.
type ListInput struct{}

// ListOutput is the output schema for the list_codebook tool.
type ListOutput struct {
	Rows  []domain.CodebookRow `json:"rows"`
	Count int                  `json:"count"`
}

// AddInput is the input schema for the add_variable tool.
type AddInput struct {
	Fields map[string]string `json:"fields,omitempty" jsonschema:"initial field values keyed by field name"`
}

// AddOutput is the output schema for the add_variable tool.
type AddOutput struct {
	Row domain.CodebookRow `json:"row"`
}

// UpdateInput is the input schema for the update_variable tool.
type UpdateInput struct {
	ID     string            `json:"id" jsonschema:"codebook row id"`
	Fields map[string]string `json:"fields" jsonschema:"field values keyed by field name: variable_name, variable_label, definition, inclusion_rules, exclusion_rules, values_scale, anchor_example"`
}

// DeleteInput is the input schema for the delete_variable tool.
type DeleteInput struct {
	ID string `json:"id" jsonschema:"codebook row id"`
}

// AnnotateInput is the input schema for the save_annotation tool.
type AnnotateInput struct {
	Video         string   `json:"video,omitempty" jsonschema:"YouTube URL or ID; switches the loaded video first"`
	Timestamp     float64  `json:"timestamp" jsonschema:"playback position in seconds"`
	Observation   string   `json:"observation,omitempty" jsonschema:"what happens at this moment"`
	OpenCodes     []string `json:"open_codes,omitempty" jsonschema:"short free-text codes"`
	AxialCategory string   `json:"axial_category,omitempty" jsonschema:"category grouping the open codes"`
	Memo          string   `json:"memo,omitempty" jsonschema:"analytical memo"`
}

// AnnotateOutput is the output schema for the save_annotation tool.
type AnnotateOutput struct {
	VideoID  string `json:"video_id"`
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sanitize_variable_name",
		Description: "Convert a category label into a statistical variable name",
	}, s.handleSanitize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_markdown",
		Description: "Parse a Markdown note's frontmatter and re-derive the codebook",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_codebook",
		Description: "List codebook variables",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_variable",
		Description: "Add a deductive codebook variable",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_variable",
		Description: "Edit fields of a codebook variable",
	}, s.handleUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_variable",
		Description: "Delete a codebook variable",
	}, s.handleDelete)

	if s.ports.Annotation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "save_annotation",
			Description: "Save a timestamped annotation and return its Markdown",
		}, s.handleAnnotate)
	}
}

func (s *Server) handleSanitize(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SanitizeInput,
) (*mcp.CallToolResult, SanitizeOutput, error) {
	return nil, SanitizeOutput{VariableName: domain.SanitizeVariableName(input.Label)}, nil
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	res, err := s.ports.Codebook.IngestText(ctx, input.Filename, input.Content)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	out := changeOutput(res)
	for _, doc := range domain.FailedDocuments(res.Session.ParsedDocuments) {
		out.Failed = append(out.Failed, FileOutput{Filename: doc.Filename, Error: doc.ParseError.Message})
	}
	return nil, out, nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	rows, err := s.ports.Codebook.Rows(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}
	if rows == nil {
		rows = []domain.CodebookRow{}
	}
	return nil, ListOutput{Rows: rows, Count: len(rows)}, nil
}

func (s *Server) handleAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddInput,
) (*mcp.CallToolResult, AddOutput, error) {
	patch, err := patchFromFields(input.Fields)
	if err != nil {
		return nil, AddOutput{}, err
	}
	row, _, err := s.ports.Codebook.AddRow(ctx)
	if err != nil {
		return nil, AddOutput{}, err
	}
	if !patch.IsEmpty() {
		res, err := s.ports.Codebook.UpdateRow(ctx, row.ID, patch)
		if err != nil {
			return nil, AddOutput{}, err
		}
		row, _ = res.Session.Codebook.Get(row.ID)
	}
	return nil, AddOutput{Row: row}, nil
}

func (s *Server) handleUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	patch, err := patchFromFields(input.Fields)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	res, err := s.ports.Codebook.UpdateRow(ctx, input.ID, patch)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, changeOutput(res), nil
}

func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	res, err := s.ports.Codebook.DeleteRow(ctx, input.ID)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, changeOutput(res), nil
}

func (s *Server) handleAnnotate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotateInput,
) (*mcp.CallToolResult, AnnotateOutput, error) {
	if s.ports.Annotation == nil {
		return nil, AnnotateOutput{}, errNoAnnotationService
	}
	if input.Video != "" {
		if _, err := s.ports.Annotation.SetVideo(ctx, input.Video); err != nil {
			return nil, AnnotateOutput{}, err
		}
	}

	res, err := s.ports.Annotation.SaveAnnotation(ctx, domain.Draft{
		Timestamp:       input.Timestamp,
		ObservationText: input.Observation,
		OpenCodes:       domain.NormaliseOpenCodes(input.OpenCodes),
		AxialCategory:   input.AxialCategory,
		AnalyticalMemo:  input.Memo,
	})
	if err != nil {
		return nil, AnnotateOutput{}, err
	}
	return nil, AnnotateOutput{
		VideoID:  res.Session.VideoID,
		Filename: res.Session.LastMarkdownFilename(),
		Markdown: res.Session.LastMarkdown,
	}, nil
}

func changeOutput(res driving.Result) ChangeOutput {
	msgs := res.Announcements()
	if msgs == nil {
		msgs = []string{}
	}
	return ChangeOutput{Messages: msgs, Variables: res.Session.Codebook.Len()}
}

// patchFromFields builds a patch, rejecting unknown field names.
// Keys are applied in sorted order so errors are deterministic.
func patchFromFields(fields map[string]string) (domain.RowPatch, error) {
	var patch domain.RowPatch
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := patch.Set(domain.RowField(k), fields[k]); err != nil {
			return patch, fmt.Errorf("field %q: %w", k, err)
		}
	}
	return patch, nil
}
