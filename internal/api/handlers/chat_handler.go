package handlers

import (
	"scholarmatch/internal/dto"
	"scholarmatch/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask about the catalog
// @Description Answer a natural-language question, grounded in retrieved catalog records. Falls back to a deterministic summary when generation is unavailable.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "User query"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
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

	result, err := h.chatService.Chat(c.Context(), req.Query)
	if err != nil {
		h.logger.Error("Chat query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(dto.ChatResponse{
		Response:       result.Response,
		MatchedRecords: result.MatchedNames,
		UsedGeneration: result.UsedGeneration,
	})
}
