package httpapi

import (
	"net/http"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// MCPPath mounts MCP when MCP is non-nil.
	MCPPath string
	MCP     http.Handler
}

// NewRouter wires the scouting routes. Middleware order, outermost first:
// tracing, request log, CORS, panic recovery.
func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("GET /v1/variants", handler.ListVariants)
	mux.HandleFunc("GET /v1/variants/{variantID}/options", handler.GetFilterOptions)
	mux.HandleFunc("POST /v1/variants/{variantID}/search", handler.SearchPlayers)
	mux.HandleFunc("POST /v1/variants/{variantID}/compare", handler.ComparePlayers)

	if opts.SwaggerEnabled {
		mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
		mux.HandleFunc("GET /openapi.json", handler.OpenAPIJSON)
		mux.HandleFunc("GET /docs", handler.SwaggerUI)
	}
	if opts.MCP != nil && opts.MCPPath != "" {
		mux.Handle(opts.MCPPath, opts.MCP)
	}

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}
