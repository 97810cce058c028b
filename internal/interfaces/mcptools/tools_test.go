package mcptools

import (
	"context"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/memory"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()

	catalog, err := variant.DefaultCatalog()
	require.NoError(t, err)
	logger := logging.NewNop()
	rosters := usecase.NewRosterService(catalog, memory.NewPlayerRepository(memory.SeedRecords()), logger)
	server := NewServer(usecase.NewScoutingService(rosters), logger, "test")

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "scouting-test", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res
}

func decodeText(t *testing.T, res *mcp.CallToolResult, dst any) {
	t.Helper()

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	require.NoError(t, sonic.UnmarshalString(text.Text, dst))
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{"list_variants", "filter_options", "search_players", "compare_players"}, names)
}

func TestListVariantsTool(t *testing.T) {
	res := callTool(t, connect(t), "list_variants", map[string]any{})
	require.False(t, res.IsError)

	var out []variantView
	decodeText(t, res, &out)
	require.Len(t, out, 2)
	require.Equal(t, memory.VariantLaterales, out[0].ID)
	require.Contains(t, out[0].Roles, "right-back")
}

func TestFilterOptionsTool(t *testing.T) {
	res := callTool(t, connect(t), "filter_options", map[string]any{"variant_id": memory.VariantVolantesMixtos})
	require.False(t, res.IsError)

	var out optionsView
	decodeText(t, res, &out)
	require.Equal(t, 610, out.MinMinutes)
	require.Equal(t, 2020, out.MaxMinutes)
	require.NotEmpty(t, out.Competitions)
}

func TestSearchPlayersTool(t *testing.T) {
	res := callTool(t, connect(t), "search_players", map[string]any{
		"variant_id": memory.VariantLaterales,
		"filter":     map[string]any{"role": "left-back"},
		"limit":      2,
	})
	require.False(t, res.IsError)

	var out searchView
	decodeText(t, res, &out)
	require.Equal(t, 3, out.Total)
	require.Equal(t, 2, out.Returned)
	require.Equal(t, "Marcos Acuña (River Plate)", out.Rows[0].Label)
	require.False(t, out.Empty)
	require.NotEmpty(t, out.Ranges)
	for _, r := range out.Ranges {
		require.True(t, r.Defined, r.Metric)
		require.NotNil(t, r.Min, r.Metric)
		require.NotNil(t, r.Max, r.Metric)
		require.LessOrEqual(t, *r.Min, *r.Max, r.Metric)
	}
}

func TestSearchPlayersTool_EmptyCohort(t *testing.T) {
	res := callTool(t, connect(t), "search_players", map[string]any{
		"variant_id": memory.VariantLaterales,
		"filter":     map[string]any{"min_minutes": 100000, "max_minutes": 200000},
	})
	require.False(t, res.IsError)

	var out searchView
	decodeText(t, res, &out)
	require.True(t, out.Empty)
	require.Zero(t, out.Total)
	require.Empty(t, out.Rows)
	require.NotEmpty(t, out.Ranges)
	for _, r := range out.Ranges {
		require.False(t, r.Defined, r.Metric)
		require.Nil(t, r.Min, r.Metric)
		require.Nil(t, r.Max, r.Metric)
	}
}

func TestComparePlayersTool(t *testing.T) {
	res := callTool(t, connect(t), "compare_players", map[string]any{
		"variant_id": memory.VariantVolantesMixtos,
		"primary":    "Ezequiel Fernandez (Al Qadsiah)",
		"secondary":  "Thiago Almada (Botafogo)",
	})
	require.False(t, res.IsError)

	var out compareView
	decodeText(t, res, &out)
	require.Equal(t, "Ezequiel Fernández (Al Qadsiah)", out.Primary.Label)
	require.Len(t, out.Primary.Metrics, 7)
	require.NotNil(t, out.Secondary)
	require.Equal(t, 1, out.Secondary.Rank)
	for _, m := range out.Secondary.Metrics {
		require.GreaterOrEqual(t, m.Scaled, 0.0)
		require.LessOrEqual(t, m.Scaled, 1.0)
	}
}

func TestComparePlayersTool_ReportsErrorsInBand(t *testing.T) {
	session := connect(t)

	res := callTool(t, session, "compare_players", map[string]any{
		"variant_id": memory.VariantLaterales,
		"primary":    "Nadie (Ninguno)",
	})
	require.True(t, res.IsError)
	require.Contains(t, res.Content[0].(*mcp.TextContent).Text, "not_found")

	res = callTool(t, session, "filter_options", map[string]any{"variant_id": "arqueros"})
	require.True(t, res.IsError)
}
