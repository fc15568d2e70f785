package dto

import (
	"time"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// MessageCreateRequest describes the payload for posting a message on a
// report. The author is fixed to the caller.
type MessageCreateRequest struct {
	Content     string `json:"content" validate:"max=4095"`
	IsAnonymous *bool  `json:"is_anonymous" validate:"required"`
}

// MessageUpdateRequest describes the payload for editing a message.
type MessageUpdateRequest struct {
	Content     *string `json:"content" validate:"omitempty,max=4095"`
	IsAnonymous *bool   `json:"is_anonymous"`
}

// MessageResponse is the serialized representation of a report message.
type MessageResponse struct {
	ID          uint      `json:"id"`
	Content     string    `json:"content"`
	ReportID    uint      `json:"report_id"`
	AuthorID    *uint     `json:"author_id"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorName  *string   `json:"author_name"`
}

// NewMessageResponse converts a model into a DTO. Anonymous messages carry
// no author identity for any caller, the author included.
func NewMessageResponse(message models.ReportMessage, authorName string) MessageResponse {
	response := MessageResponse{
		ID:          message.ID,
		Content:     message.Content,
		ReportID:    message.ReportID,
		IsAnonymous: message.IsAnonymous,
		CreatedAt:   message.CreatedAt,
	}

	if !message.IsAnonymous {
		authorID := message.AuthorID
		response.AuthorID = &authorID
		response.AuthorName = optionalName(authorName)
	}

	return response
}
