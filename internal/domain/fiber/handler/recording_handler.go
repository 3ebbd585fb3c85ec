package handler

import (
	"log"

	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/FEgor04/moretech-hack/internal/session"
	"github.com/FEgor04/moretech-hack/internal/usecase"
	"github.com/FEgor04/moretech-hack/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RecordingHandler captures interview recordings via chunked uploads. Each
// interview holds at most one live session; stopping the session stores the
// artifact path on the interview and, when a transcriber is wired, appends the
// transcript.
type RecordingHandler struct {
	interviews  *usecase.InterviewUsecase
	sessions    *session.Store
	transcriber service.Transcriber // optional
}

func NewRecordingHandler(interviews *usecase.InterviewUsecase, sessions *session.Store, transcriber service.Transcriber) *RecordingHandler {
	return &RecordingHandler{
		interviews:  interviews,
		sessions:    sessions,
		transcriber: transcriber,
	}
}

func (h *RecordingHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/interviews/:id/recording/start", h.Start)
	app.Post("/interviews/:id/recording/chunk", h.Chunk)
	app.Post("/interviews/:id/recording/stop", h.Stop)
}

func (h *RecordingHandler) Start(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	if _, err := h.interviews.Get(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "interview not found",
		}, err)
	}

	s, err := h.sessions.Create(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "failed to start recording session",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success start recording",
		Data:    fiber.Map{"interview_id": s.InterviewID, "started_at": s.CreatedAt},
	})
}

func (h *RecordingHandler) Chunk(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	s, ok := h.sessions.Lookup(id)
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "no active recording session",
		})
	}

	if len(c.Body()) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "empty chunk",
		})
	}
	if _, err := s.Write(c.Body()); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to write chunk",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success append chunk",
	})
}

func (h *RecordingHandler) Stop(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		}, err)
	}

	s, err := h.sessions.Destroy(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "no active recording session",
		}, err)
	}

	recordingPath := s.Path()
	var transcript *string
	if h.transcriber != nil {
		text, err := h.transcriber.Transcribe(c.Context(), recordingPath)
		if err != nil {
			log.Printf("Transcription failed for interview %s: %v", id, err)
		} else {
			transcript = &text
		}
	}

	interview, err := h.interviews.UpdateAdmin(id, transcript, &recordingPath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to store recording",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success stop recording",
		Data:    interview,
	})
}
