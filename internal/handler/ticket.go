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

type TicketHandler struct {
	svc    service.TicketServicer
	events kafka.EventProducer
	log    *slog.Logger
}

func NewTicketHandler(svc service.TicketServicer, events kafka.EventProducer, log *slog.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, events: events, log: log}
}

type createTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("create ticket", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}
	h.events.Produce(c.Request.Context(), kafka.EventTicketCreated, map[string]interface{}{
		"ticket_id": t.ID,
		"status":    string(t.Status),
	})
	c.Header("Location", fmt.Sprintf("/api/tickets/%d", t.ID))
	c.JSON(http.StatusCreated, newTicketResponse(t))
}

func (h *TicketHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		h.log.Error("get ticket", "ticket_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ticket"})
		return
	}
	c.JSON(http.StatusOK, newTicketResponse(t))
}

func (h *TicketHandler) List(c *gin.Context) {
	status := c.Query("status")
	items, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("list tickets", "status", status, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}
	out := make([]ticketResponse, 0, len(items))
	for i := range items {
		out = append(out, newTicketResponse(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

type updateTicketRequest struct {
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *TicketHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req.Description, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		case errors.Is(err, errs.ErrNothingToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": errs.ErrNothingToUpdate.Error()})
		case errors.Is(err, errs.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error("update ticket", "ticket_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		}
		return
	}
	h.events.Produce(c.Request.Context(), kafka.EventTicketUpdated, map[string]interface{}{
		"ticket_id": t.ID,
		"status":    string(t.Status),
	})
	c.Status(http.StatusNoContent)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		h.log.Error("delete ticket", "ticket_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ticket"})
		return
	}
	h.events.Produce(c.Request.Context(), kafka.EventTicketDeleted, map[string]interface{}{
		"ticket_id": id,
	})
	c.Status(http.StatusNoContent)
}
