package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/psds-microservice/support-ticket-api/internal/errs"
	"github.com/psds-microservice/support-ticket-api/internal/model"
	"gorm.io/gorm"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
)

// TicketServicer — интерфейс тикет-стора (Dependency Inversion для хендлеров и тестов).
type TicketServicer interface {
	List(ctx context.Context, status string) ([]model.Ticket, error)
	GetByID(ctx context.Context, id uint64) (*model.Ticket, error)
	Create(ctx context.Context, title, description string) (*model.Ticket, error)
	Update(ctx context.Context, id uint64, description, status *string) (*model.Ticket, error)
	Delete(ctx context.Context, id uint64) error
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// preloadComments подгружает комментарии тикета в порядке создания (старые первыми).
func preloadComments(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	})
}

func (s *TicketService) List(ctx context.Context, status string) ([]model.Ticket, error) {
	if status != "" && !model.TicketStatus(status).Valid() {
		return nil, errs.Invalid("invalid status value: must be 'Open', 'In Progress' or 'Closed'")
	}
	tx := preloadComments(s.db.WithContext(ctx))
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var items []model.Ticket
	if err := tx.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return items, nil
}

func (s *TicketService) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	if err := preloadComments(s.db.WithContext(ctx)).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	return &t, nil
}

func (s *TicketService) Create(ctx context.Context, title, description string) (*model.Ticket, error) {
	if title == "" {
		return nil, errs.Invalid("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, errs.Invalid("title must be at most 100 characters")
	}
	if description == "" {
		return nil, errs.Invalid("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return nil, errs.Invalid("description must be at most 1000 characters")
	}

	now := time.Now().UTC()
	t := &model.Ticket{
		Title:       title,
		Description: description,
		Status:      model.TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []model.Comment{},
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

// Update применяет частичное обновление: description и status независимо
// опциональны, пустая строка трактуется как отсутствие значения. Обновление
// без эффективных изменений отклоняется с ErrNothingToUpdate.
func (s *TicketService) Update(ctx context.Context, id uint64, description, status *string) (*model.Ticket, error) {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLen {
		return nil, errs.Invalid("description must be at most 1000 characters")
	}
	if status != nil && *status != "" && !model.TicketStatus(*status).Valid() {
		return nil, errs.Invalid("invalid status value: must be 'Open', 'In Progress' or 'Closed'")
	}

	var t model.Ticket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}

	changes := make(map[string]interface{})
	if description != nil && *description != "" && *description != t.Description {
		changes["description"] = *description
		t.Description = *description
	}
	if status != nil && *status != "" && model.TicketStatus(*status) != t.Status {
		changes["status"] = *status
		t.Status = model.TicketStatus(*status)
	}
	if len(changes) == 0 {
		return nil, errs.ErrNothingToUpdate
	}

	now := time.Now().UTC()
	changes["updated_at"] = now
	t.UpdatedAt = now
	if err := s.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update ticket %d: %w", id, err)
	}
	return &t, nil
}

// Delete удаляет тикет вместе с его комментариями в одной транзакции,
// чтобы каскад никогда не расходился с удалением самого тикета.
func (s *TicketService) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Ticket
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrTicketNotFound
			}
			return fmt.Errorf("get ticket %d: %w", id, err)
		}
		if err := tx.Where("ticket_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of ticket %d: %w", id, err)
		}
		if err := tx.Delete(&t).Error; err != nil {
			return fmt.Errorf("delete ticket %d: %w", id, err)
		}
		return nil
	})
}
