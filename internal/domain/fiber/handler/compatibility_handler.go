package handler

import (
	"github.com/FEgor04/moretech-hack/internal/usecase"
	"github.com/FEgor04/moretech-hack/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CompatibilityHandler struct {
	uc *usecase.CompatibilityUsecase
}

func NewCompatibilityHandler(uc *usecase.CompatibilityUsecase) *CompatibilityHandler {
	return &CompatibilityHandler{uc: uc}
}

func (h *CompatibilityHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/compatibility/candidate/:candidateId/vacancy/:vacancyId/report", h.Report)
	app.Get("/compatibility/candidate/:candidateId/top-vacancies", h.TopVacancies)
	app.Get("/compatibility/vacancy/:vacancyId/top-candidates", h.TopCandidates)
}

func (h *CompatibilityHandler) Report(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}
	vacancyID, err := uuid.Parse(c.Params("vacancyId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	report, err := h.uc.BuildReport(c.Context(), candidateID, vacancyID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to build compatibility report",
		}, err)
	}
	if report == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "candidate or vacancy not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success build compatibility report",
		Data:    report,
	})
}

func (h *CompatibilityHandler) TopVacancies(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	matches, err := h.uc.TopVacanciesForCandidate(c.Context(), candidateID, topLimit(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to find top vacancies",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success find top vacancies",
		Data:    matches,
	})
}

func (h *CompatibilityHandler) TopCandidates(c *fiber.Ctx) error {
	vacancyID, err := uuid.Parse(c.Params("vacancyId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	matches, err := h.uc.TopCandidatesForVacancy(c.Context(), vacancyID, topLimit(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to find top candidates",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success find top candidates",
		Data:    matches,
	})
}

func topLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}
