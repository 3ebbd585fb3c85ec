package handler

import (
	"strings"

	"github.com/FEgor04/moretech-hack/internal/dto"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/usecase"
	"github.com/FEgor04/moretech-hack/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/interviews", h.Create)
	app.Get("/interviews", h.List)
	app.Get("/interviews/:id", h.Get)
	app.Patch("/interviews/:id", h.Update)
	app.Delete("/interviews/:id", h.Delete)

	app.Post("/interviews/:id/messages/first", h.Initialize)
	app.Post("/interviews/:id/messages", h.PostMessage)
	app.Get("/interviews/:id/messages", h.ListMessages)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview payload",
		}, err)
	}
	if req.CandidateID == uuid.Nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "candidate_id is required",
		})
	}

	interview := model.Interview{
		CandidateID: req.CandidateID,
		VacancyID:   req.VacancyID,
	}
	if err := h.uc.Create(&interview); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create interview",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create interview",
		Data:    interview,
	})
}

func (h *InterviewHandler) List(c *fiber.Ctx) error {
	var candidateID *uuid.UUID
	if raw := c.Query("candidate_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "invalid candidate_id",
			}, err)
		}
		candidateID = &id
	}

	interviews, err := h.uc.List(candidateID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list interviews",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list interviews",
		Data:    interviews,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	interview, err := h.uc.Get(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "interview not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview",
		Data:    interview,
	})
}

func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	var req dto.UpdateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview payload",
		}, err)
	}

	interview, err := h.uc.UpdateAdmin(id, req.Transcript, req.RecordingURL)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update interview",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update interview",
		Data:    interview,
	})
}

func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	if err := h.uc.Delete(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete interview",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete interview",
	})
}

func (h *InterviewHandler) Initialize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	messages, err := h.uc.Initialize(c.Context(), id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to initialize conversation",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success initialize conversation",
		Data:    messages,
	})
}

func (h *InterviewHandler) PostMessage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	var req dto.InterviewMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid message payload",
		}, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "message text is required",
		})
	}

	messages, err := h.uc.PostMessage(c.Context(), id, req.Text)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to post message",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success post message",
		Data:    messages,
	})
}

func (h *InterviewHandler) ListMessages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	includeSystem := c.QueryBool("include_system", false)
	messages, err := h.uc.ListMessages(id, includeSystem)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list messages",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list messages",
		Data:    messages,
	})
}
