package dto

import "github.com/google/uuid"

type CreateInterviewRequest struct {
	CandidateID uuid.UUID  `json:"candidate_id"`
	VacancyID   *uuid.UUID `json:"vacancy_id"`
}

type UpdateInterviewRequest struct {
	Transcript   *string `json:"transcript"`
	RecordingURL *string `json:"recording_url"`
}

type InterviewMessageRequest struct {
	Text string `json:"text"`
}
