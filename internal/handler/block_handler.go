package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edunext/mindmap-api/internal/dto"
	"github.com/edunext/mindmap-api/internal/service"
	"github.com/edunext/mindmap-api/internal/utils"
)

// BlockHandler manages block configuration and view context endpoints.
type BlockHandler struct {
	blocks      service.BlockService
	assignments service.AssignmentService
	logger      zerolog.Logger
}

// NewBlockHandler builds a block handler instance.
func NewBlockHandler(blocks service.BlockService, assignments service.AssignmentService, logger zerolog.Logger) *BlockHandler {
	return &BlockHandler{
		blocks:      blocks,
		assignments: assignments,
		logger:      logger.With().Str("component", "block_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. courseTeam guards
// the studio route; the service re-checks the identity regardless.
func (h *BlockHandler) Register(router fiber.Router, courseTeam fiber.Handler) {
	router.Post("/studio", courseTeam, h.studioSubmit)
	router.Get("/context", h.viewContext)
}

func (h *BlockHandler) studioSubmit(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	var payload dto.StudioSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	block, err := h.blocks.StudioSubmit(c.Context(), courseID, blockID, identityFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "block configuration saved", block)
}

func (h *BlockHandler) viewContext(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	context, err := h.assignments.ViewContext(c.Context(), courseID, blockID, identityFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "view context assembled", context)
}

func (h *BlockHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrNotCourseTeam):
		return utils.SendError(c, fiber.StatusForbidden, "course team role required")
	case errors.Is(err, service.ErrBlockNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "block not found")
	case errors.Is(err, service.ErrDisplayNameEmpty), errors.Is(err, service.ErrInvalidMindMap):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
