package handler

import (
	"time"

	"github.com/psds-microservice/support-ticket-api/internal/model"
)

type ticketResponse struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Comments    []commentResponse `json:"comments"`
}

type commentResponse struct {
	ID        uint64    `json:"id"`
	TicketID  uint64    `json:"ticketId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// newTicketResponse маппит сущность в DTO. Comments всегда сериализуется
// массивом (в том числе пустым), никогда как null.
func newTicketResponse(t *model.Ticket) ticketResponse {
	return ticketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Comments:    newCommentResponses(t.Comments),
	}
}

func newCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		TicketID:  c.TicketID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func newCommentResponses(comments []model.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	return out
}
