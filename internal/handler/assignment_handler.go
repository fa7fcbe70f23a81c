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

// AssignmentHandler manages the learner save and submit endpoints.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Post("/save", h.save)
	router.Post("/submit", h.submit)
}

func (h *AssignmentHandler) save(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	var payload dto.SaveAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Save(c.Context(), courseID, blockID, identityFromContext(c), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment saved", dto.HandlerResult{Success: true})
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	var payload dto.SubmitAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Submit(c.Context(), courseID, blockID, identityFromContext(c), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment submitted", dto.HandlerResult{Success: true})
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmitNotAllowed):
		return utils.SendError(c, fiber.StatusForbidden, "submission not allowed")
	case errors.Is(err, service.ErrBlockNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "block not found")
	case errors.Is(err, service.ErrInvalidMindMap):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
