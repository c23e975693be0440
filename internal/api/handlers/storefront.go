package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/api/middleware"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/config"
	appErrors "github.com/SnapFood-Technologies/waveorder-catalog/internal/errors"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	service "github.com/SnapFood-Technologies/waveorder-catalog/internal/services"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type StorefrontHandler struct {
	catalogService service.CatalogService
	events         service.EventLogger
	validator      *validator.Validate
	catalogCfg     config.CatalogConfig
}

func NewStorefrontHandler(catalogService service.CatalogService, events service.EventLogger, catalogCfg config.CatalogConfig) *StorefrontHandler {
	return &StorefrontHandler{
		catalogService: catalogService,
		events:         events,
		validator:      validator.New(),
		catalogCfg:     catalogCfg,
	}
}

func (h *StorefrontHandler) GetStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		slug := r.PathValue("slug")

		profile, err := h.catalogService.GetStore(r.Context(), slug)
		if err != nil {
			h.handleError(w, r, slug, err)
			return
		}

		response.WriteJson(w, http.StatusOK, profile)

	}
}

// for eg: GET /storefront/{slug}/products?categoryId=a,b&search=pjate&page=1&limit=50
func (h *StorefrontHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		slug := r.PathValue("slug")

		params := ParseCatalogParams(r, h.catalogCfg)

		if err := h.validator.Struct(params); err != nil {
			logger.Warn("Invalid storefront listing parameters", slog.Any("error", err))
			response.Error(w, appErrors.ValidationError("Invalid query parameters").WithError(err))
			return
		}

		result, err := h.catalogService.ListProducts(r.Context(), slug, params)
		if err != nil {
			h.handleError(w, r, slug, err)
			return
		}

		response.WriteJson(w, http.StatusOK, result)

	}
}

// handleError maps service errors onto the storefront error contract
// and emits the diagnostic system event before responding.
func (h *StorefrontHandler) handleError(w http.ResponseWriter, r *http.Request, slug string, err error) {
	logger := middleware.LoggerFromContext(r.Context())

	event := &models.SystemEvent{
		Slug:      slug,
		Message:   err.Error(),
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}

	if appErr, ok := appErrors.IsAppError(err); ok && appErr.StatusCode == http.StatusNotFound {
		event.Kind = models.EventKindStoreNotFound

		logger.Warn("Store not found", slog.String("slug", slug))
		h.events.Log(r.Context(), event)
		response.Error(w, err)

		return
	}

	event.Kind = models.EventKindStorefrontError

	logger.Error("Storefront request failed", slog.String("slug", slug), slog.Any("error", err))
	h.events.Log(r.Context(), event)
	response.WriteJson(w, http.StatusInternalServerError, response.ErrorResponse{Error: "Internal server error"})
}

// ParseCatalogParams reads the raw listing query parameters, applying
// defaults and clamps. Unparseable values fall back to their defaults
// rather than failing the request; malformed ids are skipped.
func ParseCatalogParams(r *http.Request, cfg config.CatalogConfig) *models.CatalogParams {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = cfg.DefaultPageSize
	}

	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}

	sortBy := query.Get("sortBy")

	switch sortBy {
	case models.SortNameAsc, models.SortNameDesc, models.SortPriceAsc, models.SortPriceDesc, models.SortStockDesc:
	default:
		sortBy = models.SortStockDesc
	}

	return &models.CatalogParams{
		CategoryIDs:   parseUUIDList(query.Get("categoryId")),
		Search:        query.Get("search"),
		Page:          page,
		Limit:         limit,
		PriceMin:      parseFloat(query.Get("priceMin")),
		PriceMax:      parseFloat(query.Get("priceMax")),
		CollectionIDs: parseUUIDList(query.Get("collections")),
		GroupIDs:      parseUUIDList(query.Get("groups")),
		BrandIDs:      parseUUIDList(query.Get("brands")),
		SortBy:        sortBy,
	}
}

func parseUUIDList(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}

	var ids []uuid.UUID

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		id, err := uuid.Parse(token)
		if err != nil {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &value
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")

		return strings.TrimSpace(parts[0])
	}

	return r.RemoteAddr
}
