// Package mcptools exposes the scouting engine as Model Context Protocol
// tools so agents can rank and compare players without the HTTP API.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

const (
	serverName         = "scouting-aaaj"
	defaultSearchLimit = 25
)

type FilterArgs struct {
	MinMinutes      *int     `json:"min_minutes,omitempty" jsonschema:"Lower bound of minutes played, inclusive"`
	MaxMinutes      *int     `json:"max_minutes,omitempty" jsonschema:"Upper bound of minutes played, inclusive"`
	Role            string   `json:"role,omitempty" jsonschema:"Role id from filter_options, e.g. right-back"`
	Foot            string   `json:"foot,omitempty" jsonschema:"any|left|right|both|unknown"`
	CompetitionKeys []string `json:"competition_keys,omitempty" jsonschema:"Composite keys 'region | competition | season' from filter_options"`
}

func (f FilterArgs) toInput() usecase.FilterInput {
	return usecase.FilterInput{
		MinMinutes:      f.MinMinutes,
		MaxMinutes:      f.MaxMinutes,
		RoleID:          f.Role,
		Foot:            f.Foot,
		CompetitionKeys: f.CompetitionKeys,
	}
}

type ListVariantsArgs struct{}

type FilterOptionsArgs struct {
	VariantID string `json:"variant_id" jsonschema:"Variant id from list_variants (required)"`
	Role      string `json:"role,omitempty" jsonschema:"Narrow the competition list to one role"`
}

type SearchPlayersArgs struct {
	VariantID string     `json:"variant_id" jsonschema:"Variant id from list_variants (required)"`
	Filter    FilterArgs `json:"filter,omitempty"`
	Highlight []string   `json:"highlight,omitempty" jsonschema:"Up to two player labels 'Name (Team)' to mark"`
	Limit     int        `json:"limit,omitempty" jsonschema:"Maximum rows returned (default 25)"`
}

type ComparePlayersArgs struct {
	VariantID string     `json:"variant_id" jsonschema:"Variant id from list_variants (required)"`
	Filter    FilterArgs `json:"filter,omitempty"`
	Primary   string     `json:"primary" jsonschema:"Player label 'Name (Team)' (required)"`
	Secondary string     `json:"secondary,omitempty" jsonschema:"Optional second player label"`
}

type tools struct {
	scouting *usecase.ScoutingService
	logger   *logging.Logger
}

// NewServer registers the scouting tools on a fresh MCP server.
func NewServer(scouting *usecase.ScoutingService, logger *logging.Logger, version string) *mcp.Server {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	t := &tools{scouting: scouting, logger: logger}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_variants",
		Description: "List dataset variants with their metric columns and role selectors",
	}, t.listVariants)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_options",
		Description: "Minutes bounds, roles, feet and competition keys available for a variant",
	}, t.filterOptions)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_players",
		Description: "Filter a variant's roster and rank players by overall score",
	}, t.searchPlayers)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_players",
		Description: "Profile one or two players against the min-max ranges of the filtered cohort",
	}, t.comparePlayers)

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *tools) listVariants(ctx context.Context, _ *mcp.CallToolRequest, _ ListVariantsArgs) (*mcp.CallToolResult, any, error) {
	variants := t.scouting.ListVariants(ctx)
	out := make([]variantView, 0, len(variants))
	for _, v := range variants {
		roles := make([]string, 0, len(v.Roles))
		for _, r := range v.RoleOptions() {
			roles = append(roles, r.ID)
		}
		out = append(out, variantView{ID: v.ID, Name: v.Name, Metrics: v.MetricKeys, Roles: roles})
	}
	return toolJSON(out)
}

func (t *tools) filterOptions(ctx context.Context, _ *mcp.CallToolRequest, args FilterOptionsArgs) (*mcp.CallToolResult, any, error) {
	res, err := t.scouting.Options(ctx, usecase.OptionsInput{VariantID: args.VariantID, RoleID: args.Role})
	if err != nil {
		return t.toolError(ctx, "filter_options", err), nil, nil
	}
	return toolJSON(optionsToView(res))
}

func (t *tools) searchPlayers(ctx context.Context, _ *mcp.CallToolRequest, args SearchPlayersArgs) (*mcp.CallToolResult, any, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	res, err := t.scouting.Search(ctx, usecase.SearchInput{
		VariantID: args.VariantID,
		Filter:    args.Filter.toInput(),
		Highlight: args.Highlight,
		Limit:     limit,
	})
	if err != nil {
		return t.toolError(ctx, "search_players", err), nil, nil
	}
	return toolJSON(searchToView(res))
}

func (t *tools) comparePlayers(ctx context.Context, _ *mcp.CallToolRequest, args ComparePlayersArgs) (*mcp.CallToolResult, any, error) {
	input := usecase.CompareInput{
		VariantID: args.VariantID,
		Filter:    args.Filter.toInput(),
		Primary:   args.Primary,
	}
	if s := strings.TrimSpace(args.Secondary); s != "" {
		input.Secondary = &s
	}
	res, err := t.scouting.Compare(ctx, input)
	if err != nil {
		return t.toolError(ctx, "compare_players", err), nil, nil
	}
	return toolJSON(compareToView(res))
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

// toolError reports failures in-band so the calling agent can correct its
// arguments. Only unclassified errors are logged at error level.
func (t *tools) toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	kind := errorKind(err)
	if kind == "internal" {
		t.logger.ErrorContext(ctx, "mcp tool failed", "tool", tool, "error", err)
	} else {
		t.logger.WarnContext(ctx, "mcp tool rejected", "tool", tool, "kind", kind, "error", err)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error (%s): %v", kind, err)},
		},
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, usecase.ErrNotFound):
		return "not_found"
	case errors.Is(err, usecase.ErrDataQuality):
		return "data_quality"
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
