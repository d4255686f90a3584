package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/support-ticket-api/internal/errs"
	"github.com/psds-microservice/support-ticket-api/internal/kafka"
	"github.com/psds-microservice/support-ticket-api/internal/service"
)

type CommentHandler struct {
	svc    service.CommentServicer
	events kafka.EventProducer
	log    *slog.Logger
}

func NewCommentHandler(svc service.CommentServicer, events kafka.EventProducer, log *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, events: events, log: log}
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (h *CommentHandler) List(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	items, err := h.svc.List(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, errs.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		h.log.Error("list comments", "ticket_id", ticketID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, newCommentResponses(items))
}

func (h *CommentHandler) Get(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	id, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	cm, err := h.svc.GetByID(c.Request.Context(), ticketID, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		case errors.Is(err, errs.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		default:
			h.log.Error("get comment", "ticket_id", ticketID, "comment_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get comment"})
		}
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(cm))
}

func (h *CommentHandler) Create(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	cm, err := h.svc.Create(c.Request.Context(), ticketID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		default:
			h.log.Error("create comment", "ticket_id", ticketID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		}
		return
	}
	h.events.Produce(c.Request.Context(), kafka.EventCommentCreated, map[string]interface{}{
		"ticket_id":  cm.TicketID,
		"comment_id": cm.ID,
	})
	c.Header("Location", fmt.Sprintf("/api/tickets/%d/comments/%d", cm.TicketID, cm.ID))
	c.JSON(http.StatusCreated, newCommentResponse(cm))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	id, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ticketID, id); err != nil {
		switch {
		case errors.Is(err, errs.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		case errors.Is(err, errs.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		default:
			h.log.Error("delete comment", "ticket_id", ticketID, "comment_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		}
		return
	}
	h.events.Produce(c.Request.Context(), kafka.EventCommentDeleted, map[string]interface{}{
		"ticket_id":  ticketID,
		"comment_id": id,
	})
	c.Status(http.StatusNoContent)
}
