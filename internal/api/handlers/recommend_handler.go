package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"scholarmatch/internal/dto"
	"scholarmatch/internal/models"
	"scholarmatch/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendHandler struct {
	recService *service.RecommendService
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewRecommendHandler(recService *service.RecommendService, logger *zap.Logger) *RecommendHandler {
	return &RecommendHandler{
		recService: recService,
		validate:   validator.New(),
		logger:     logger,
	}
}

// FindSimilar godoc
// @Summary Find similar records
// @Description Find catalog records most similar to a named record, by cosine distance over encoded features
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.SimilarRequest true "Record name and result count"
// @Success 200 {object} dto.RecommendResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/similar [post]
func (h *RecommendHandler) FindSimilar(c *fiber.Ctx) error {
	var req dto.SimilarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records, err := h.recService.FindSimilar(req.Name, req.K)
	if err != nil {
		return h.serviceError(c, err, "Similarity query failed")
	}

	return c.JSON(dto.RecommendResponse{Records: records, Count: len(records)})
}

// Recommend godoc
// @Summary Recommend records by preferences
// @Description Filter the catalog by constraints, then rank by similarity anchor or the kind's default ordering
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendRequest true "Constraints and ranking options"
// @Success 200 {object} dto.RecommendResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recommend [post]
func (h *RecommendHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records, err := h.recService.Recommend(req.Preferences(), req.K, req.SimilarTo, req.MatchProfile)
	if err != nil {
		return h.serviceError(c, err, "Recommendation query failed")
	}

	return c.JSON(dto.RecommendResponse{Records: records, Count: len(records)})
}

// ListRecords godoc
// @Summary List catalog records
// @Description List records in catalog order with limit/offset paging
// @Tags catalog
// @Produce json
// @Param limit query int false "Max records to return (default 50)"
// @Param offset query int false "Records to skip"
// @Success 200 {object} dto.RecommendResponse
// @Router /api/v1/records [get]
func (h *RecommendHandler) ListRecords(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	records, err := h.recService.ListRecords(limit, offset)
	if err != nil {
		return h.serviceError(c, err, "List query failed")
	}

	return c.JSON(dto.RecommendResponse{Records: records, Count: len(records)})
}

// GetRecord godoc
// @Summary Get a record by name
// @Description Look up a single record by exact or partial name match
// @Tags catalog
// @Produce json
// @Param name path string true "Record name (case-insensitive, substring allowed)"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/records/{name} [get]
func (h *RecommendHandler) GetRecord(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Record name is required",
		})
	}

	record, err := h.recService.GetRecord(name)
	if err != nil {
		return h.serviceError(c, err, "Record lookup failed")
	}

	return c.JSON(record)
}

// Stats godoc
// @Summary Catalog statistics
// @Description Aggregate counts and amount statistics over the loaded catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /api/v1/stats [get]
func (h *RecommendHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.recService.Stats()
	if err != nil {
		return h.serviceError(c, err, "Stats query failed")
	}
	return c.JSON(stats)
}

// Rebuild godoc
// @Summary Rebuild the recommendation index
// @Description Reload the catalog from storage and atomically swap in freshly fitted models
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/rebuild [post]
func (h *RecommendHandler) Rebuild(c *fiber.Ctx) error {
	if err := h.recService.Rebuild(c.Context()); err != nil {
		h.logger.Error("Rebuild failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to rebuild index",
		})
	}
	return c.JSON(fiber.Map{"status": "rebuilt"})
}

// serviceError maps domain errors onto HTTP statuses.
func (h *RecommendHandler) serviceError(c *fiber.Ctx, err error, logMsg string) error {
	var encErr *models.EncodingError
	var dimErr *models.DimensionMismatchError

	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.As(err, &encErr), errors.As(err, &dimErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
