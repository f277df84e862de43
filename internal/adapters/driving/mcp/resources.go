package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for gifex resources.
	uriScheme = "gifex://"

	settingsURI = uriScheme + "settings"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         settingsURI,
		Name:        "settings",
		Description: "Key path, projection policy and open pacing in effect",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// settingsInfo is the JSON form of the settings resource.
type settingsInfo struct {
	ContainerKey string  `json:"container_key"`
	ListKey      string  `json:"list_key"`
	Policy       string  `json:"policy"`
	OpenTarget   string  `json:"open_target"`
	OpenRate     float64 `json:"open_rate"`
	OpenBurst    int     `json:"open_burst"`
}

// handleSettingsResource returns the current settings, or the defaults
// when no settings service is configured.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		stored, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		settings = *stored
	}

	data, err := json.MarshalIndent(settingsInfo{
		ContainerKey: settings.Search.Path.Container,
		ListKey:      settings.Search.Path.List,
		Policy:       settings.Search.Policy.String(),
		OpenTarget:   settings.Open.Target.String(),
		OpenRate:     settings.Open.Rate,
		OpenBurst:    settings.Open.Burst,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
