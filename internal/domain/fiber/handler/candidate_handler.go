package handler

import (
	"path/filepath"
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

type CandidateHandler struct {
	uc *usecase.CandidateUsecase
}

func NewCandidateHandler(uc *usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/candidates", h.Create)
	app.Post("/candidates/upload-pdf", middleware.RateLimiter(5, 1*time.Minute), h.UploadPDF)
	app.Get("/candidates", h.List)
	app.Get("/candidates/:id", h.Get)
	app.Patch("/candidates/:id", h.Update)
	app.Delete("/candidates/:id", h.Delete)
}

func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var candidate model.Candidate
	if err := c.BodyParser(&candidate); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate payload",
		}, err)
	}
	if strings.TrimSpace(candidate.Name) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "candidate name is required",
		})
	}

	if err := h.uc.Create(c.Context(), &candidate); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create candidate",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create candidate",
		Data:    candidate,
	})
}

func (h *CandidateHandler) UploadPDF(c *fiber.Ctx) error {
	savePath, err := saveUpload(c, "cv", "./uploads/cv/")
	if err != nil {
		return err
	}

	candidate, err := h.uc.CreateFromPDF(c.Context(), savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to parse CV",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create candidate from CV",
		Data:    candidate,
	})
}

func (h *CandidateHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	candidates, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list candidates",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list candidates",
		Data:       candidates,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	candidate, err := h.uc.Get(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "candidate not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate",
		Data:    candidate,
	})
}

func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	var req dto.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate payload",
		}, err)
	}

	candidate, err := h.uc.Update(c.Context(), id, &req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update candidate",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update candidate",
		Data:    candidate,
	})
}

func (h *CandidateHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	if err := h.uc.Delete(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete candidate",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete candidate",
	})
}

// saveUpload stores a multipart PDF upload and returns its path on disk.
func saveUpload(c *fiber.Ctx, fieldName, uploadDir string) (string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fieldName + " file is required",
		}, err)
	}

	if file.Size > 5*1024*1024 {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fieldName + " file size is too large (max 5MB)",
		})
	}

	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "only PDF files are supported",
		})
	}

	savePath := filepath.Join(uploadDir, file.Filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save " + fieldName + " file",
		}, err)
	}
	return savePath, nil
}
