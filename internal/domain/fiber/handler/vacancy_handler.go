package handler

import (
	"strings"
	"time"

	"github.com/FEgor04/moretech-hack/internal/dto"
	"github.com/FEgor04/moretech-hack/internal/middleware"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/response"
	"github.com/FEgor04/moretech-hack/internal/usecase"
	"github.com/FEgor04/moretech-hack/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VacancyHandler struct {
	uc *usecase.VacancyUsecase
}

func NewVacancyHandler(uc *usecase.VacancyUsecase) *VacancyHandler {
	return &VacancyHandler{uc: uc}
}

func (h *VacancyHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/vacancies", h.Create)
	app.Post("/vacancies/upload-pdf", middleware.RateLimiter(5, 1*time.Minute), h.UploadPDF)
	app.Get("/vacancies", h.List)
	app.Get("/vacancies/:id", h.Get)
	app.Patch("/vacancies/:id", h.Update)
	app.Delete("/vacancies/:id", h.Delete)

	app.Get("/vacancies/:id/notes", h.ListNotes)
	app.Post("/vacancies/:id/notes", h.CreateNote)
	app.Patch("/vacancies/:id/notes/:noteId", h.UpdateNote)
	app.Delete("/vacancies/:id/notes/:noteId", h.DeleteNote)
}

func (h *VacancyHandler) Create(c *fiber.Ctx) error {
	var vacancy model.Vacancy
	if err := c.BodyParser(&vacancy); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy payload",
		}, err)
	}
	if strings.TrimSpace(vacancy.Title) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "vacancy title is required",
		})
	}

	if err := h.uc.Create(c.Context(), &vacancy); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create vacancy",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create vacancy",
		Data:    vacancy,
	})
}

func (h *VacancyHandler) UploadPDF(c *fiber.Ctx) error {
	savePath, err := saveUpload(c, "pdf_file", "./uploads/vacancies/")
	if err != nil {
		return err
	}

	vacancy, err := h.uc.CreateFromPDF(c.Context(), savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to parse job description",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create vacancy from PDF",
		Data:    vacancy,
	})
}

func (h *VacancyHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	vacancies, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list vacancies",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list vacancies",
		Data:       vacancies,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *VacancyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	vacancy, err := h.uc.Get(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "vacancy not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get vacancy",
		Data:    vacancy,
	})
}

func (h *VacancyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	var req dto.UpdateVacancyRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy payload",
		}, err)
	}

	vacancy, err := h.uc.Update(c.Context(), id, &req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update vacancy",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update vacancy",
		Data:    vacancy,
	})
}

func (h *VacancyHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	if err := h.uc.Delete(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete vacancy",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete vacancy",
	})
}

func (h *VacancyHandler) ListNotes(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	notes, err := h.uc.ListNotes(id, limit, offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list notes",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list notes",
		Data:    notes,
	})
}

func (h *VacancyHandler) CreateNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vacancy id",
		}, err)
	}

	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid note payload",
		}, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "note text is required",
		})
	}

	note, err := h.uc.AddNote(id, req.Text)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create note",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create note",
		Data:    note,
	})
}

func (h *VacancyHandler) UpdateNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid note id",
		}, err)
	}

	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid note payload",
		}, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "note text is required",
		})
	}

	note, err := h.uc.UpdateNote(noteID, req.Text)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update note",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update note",
		Data:    note,
	})
}

func (h *VacancyHandler) DeleteNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid note id",
		}, err)
	}

	if err := h.uc.DeleteNote(noteID); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete note",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete note",
	})
}
