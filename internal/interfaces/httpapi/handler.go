package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

const maxRequestBytes = 1 << 20

type Handler struct {
	scoutingService *usecase.ScoutingService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(scoutingService *usecase.ScoutingService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoutingService: scoutingService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListVariants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVariants")
	defer span.End()

	variants := h.scoutingService.ListVariants(ctx)
	items := make([]variantDTO, 0, len(variants))
	for _, v := range variants {
		items = append(items, variantToDTO(v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	variantID := strings.TrimSpace(r.PathValue("variantID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFilterOptions", variantAttr(variantID))
	defer span.End()

	res, err := h.scoutingService.Options(ctx, usecase.OptionsInput{
		VariantID: variantID,
		RoleID:    r.URL.Query().Get("role"),
	})
	if err != nil {
		h.logFailure(ctx, "get filter options failed", variantID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, optionsToDTO(res))
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	variantID := strings.TrimSpace(r.PathValue("variantID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers", variantAttr(variantID))
	defer span.End()

	var req searchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.scoutingService.Search(ctx, usecase.SearchInput{
		VariantID: variantID,
		Filter:    req.Filter.toInput(),
		Highlight: req.Highlight,
		Limit:     req.Limit,
	})
	if err != nil {
		h.logFailure(ctx, "search players failed", variantID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, searchToDTO(res))
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	variantID := strings.TrimSpace(r.PathValue("variantID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers", variantAttr(variantID))
	defer span.End()

	var req compareRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.scoutingService.Compare(ctx, usecase.CompareInput{
		VariantID: variantID,
		Filter:    req.Filter.toInput(),
		Primary:   req.Primary,
		Secondary: req.Secondary,
	})
	if err != nil {
		h.logFailure(ctx, "compare players failed", variantID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, compareToDTO(res))
}

// decodeRequest reads a JSON body into dst and validates it. An empty body
// decodes as the zero request.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && err != io.EOF {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, dst); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// logFailure keeps client mistakes at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg, variantID string, err error) {
	if mapError(err).HTTPStatus < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, "variant", variantID, "error", err)
		return
	}
	h.logger.ErrorContext(ctx, msg, "variant", variantID, "error", err)
}
