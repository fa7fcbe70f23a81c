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

// GradingHandler manages the instructor grading endpoints.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler builds a grading handler instance.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Get("/grading", h.gradingData)
	router.Post("/grade", h.enterGrade)
	router.Post("/grade/remove", h.removeGrade)
}

func (h *GradingHandler) gradingData(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	data, err := h.service.GradingData(c.Context(), courseID, blockID, identityFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grading data retrieved", data)
}

func (h *GradingHandler) enterGrade(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	var payload dto.EnterGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.EnterGrade(c.Context(), courseID, blockID, identityFromContext(c), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grade recorded", dto.HandlerResult{Success: true})
}

func (h *GradingHandler) removeGrade(c *fiber.Ctx) error {
	courseID, blockID := blockParams(c)

	var payload dto.RemoveGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.RemoveGrade(c.Context(), courseID, blockID, identityFromContext(c), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grade removed", dto.HandlerResult{Success: true})
}

func (h *GradingHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrNotCourseTeam):
		return utils.SendError(c, fiber.StatusForbidden, "course team role required")
	case errors.Is(err, service.ErrBlockNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "block not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrScoreExceedsMax):
		return utils.SendError(c, fiber.StatusBadRequest, "score cannot be greater than max score")
	case errors.Is(err, service.ErrPointsNotConfigured), errors.Is(err, service.ErrWeightNotConfigured):
		h.logger.Error().Err(err).Msg("block scoring misconfigured")
		return utils.SendError(c, fiber.StatusInternalServerError, "block scoring misconfigured")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
