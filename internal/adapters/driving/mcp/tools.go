package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/session"
)

// FindInput is the input schema for the find_gifs tool.
type FindInput struct {
	Path      string `json:"path" jsonschema:"path of package/Account/user.json from a Discord data package"`
	Container string `json:"container,omitempty" jsonschema:"key holding the list container (default favoriteGifs)"`
	List      string `json:"list,omitempty" jsonschema:"key of the GIF list inside the container (default gifs)"`
	Policy    string `json:"policy,omitempty" jsonschema:"entries without a src link: skip, strict or keep (default skip)"`
}

// FindOutput is the output schema for the find_gifs tool.
type FindOutput struct {
	File    string              `json:"file"`
	Path    string              `json:"path"`
	Message string              `json:"message"`
	Count   int                 `json:"count"`
	GIFs    []domain.GifRecord  `json:"gifs"`
	Issues  []domain.EntryIssue `json:"issues,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_gifs",
		Description: "List the saved GIFs (Tenor URL and src link) in a Discord user.json export",
	}, s.handleFind)
}

// handleFind handles the find_gifs tool invocation.
func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	if input.Path == "" {
		return nil, FindOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	keyPath, policy, err := s.searchOptions(input)
	if err != nil {
		return nil, FindOutput{}, err
	}

	doc, err := s.ports.Loader.LoadFile(ctx, input.Path)
	if err != nil {
		return nil, FindOutput{}, &toolError{err: err}
	}
	state := session.Update(session.State{}, session.Loaded{Document: doc})

	result, err := s.ports.Finder.Find(ctx, doc, keyPath, policy)
	if err != nil {
		return nil, FindOutput{}, &toolError{err: err}
	}
	state = session.Update(state, session.Searched{Result: result})

	output := FindOutput{
		File:    doc.Name,
		Path:    result.Path.String(),
		Message: state.Banner(),
		Count:   state.Count(),
		GIFs:    result.Set.Records(),
		Issues:  result.Issues,
	}
	if output.GIFs == nil {
		output.GIFs = []domain.GifRecord{}
	}

	return nil, output, nil
}

// searchOptions merges settings with the tool arguments.
func (s *Server) searchOptions(input FindInput) (domain.KeyPath, domain.ProjectionPolicy, error) {
	settings := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		stored, err := s.ports.Settings.Get()
		if err != nil {
			return domain.KeyPath{}, "", fmt.Errorf("getting settings: %w", err)
		}
		settings = *stored
	}

	keyPath := settings.Search.Path
	if input.Container != "" {
		keyPath.Container = input.Container
	}
	if input.List != "" {
		keyPath.List = input.List
	}

	policy := settings.Search.Policy
	if input.Policy != "" {
		policy = domain.ProjectionPolicy(input.Policy)
		if !policy.IsValid() {
			return domain.KeyPath{}, "", fmt.Errorf("%w: unknown policy %q", domain.ErrInvalidInput, input.Policy)
		}
	}
	return keyPath, policy, nil
}
