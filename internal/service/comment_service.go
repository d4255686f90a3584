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

const maxCommentLen = 500

// CommentServicer — интерфейс стора комментариев. Все операции принимают
// ticketID: комментарий адресуется составным ключом (ticketID, id).
type CommentServicer interface {
	List(ctx context.Context, ticketID uint64) ([]model.Comment, error)
	GetByID(ctx context.Context, ticketID, id uint64) (*model.Comment, error)
	Create(ctx context.Context, ticketID uint64, text string) (*model.Comment, error)
	Delete(ctx context.Context, ticketID, id uint64) error
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func ticketExists(tx *gorm.DB, ticketID uint64) error {
	var count int64
	if err := tx.Model(&model.Ticket{}).Where("id = ?", ticketID).Count(&count).Error; err != nil {
		return fmt.Errorf("check ticket %d existence: %w", ticketID, err)
	}
	if count == 0 {
		return errs.ErrTicketNotFound
	}
	return nil
}

func (s *CommentService) List(ctx context.Context, ticketID uint64) ([]model.Comment, error) {
	tx := s.db.WithContext(ctx)
	if err := ticketExists(tx, ticketID); err != nil {
		return nil, err
	}
	var items []model.Comment
	if err := tx.Where("ticket_id = ?", ticketID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list comments of ticket %d: %w", ticketID, err)
	}
	return items, nil
}

func (s *CommentService) GetByID(ctx context.Context, ticketID, id uint64) (*model.Comment, error) {
	tx := s.db.WithContext(ctx)
	if err := ticketExists(tx, ticketID); err != nil {
		return nil, err
	}
	var c model.Comment
	if err := tx.Where("id = ? AND ticket_id = ?", id, ticketID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment %d of ticket %d: %w", id, ticketID, err)
	}
	return &c, nil
}

// Create проверяет существование родительского тикета и вставляет комментарий
// в одной транзакции: параллельное удаление тикета приводит к осознанному
// not found, а не к нарушению внешнего ключа. UpdatedAt родителя не меняется.
func (s *CommentService) Create(ctx context.Context, ticketID uint64, text string) (*model.Comment, error) {
	if text == "" {
		return nil, errs.Invalid("text is required")
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return nil, errs.Invalid("text must be at most 500 characters")
	}

	c := &model.Comment{
		TicketID:  ticketID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ticketExists(tx, ticketID); err != nil {
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("create comment for ticket %d: %w", ticketID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, ticketID, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ticketExists(tx, ticketID); err != nil {
			return err
		}
		var c model.Comment
		if err := tx.Where("id = ? AND ticket_id = ?", id, ticketID).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrCommentNotFound
			}
			return fmt.Errorf("get comment %d of ticket %d: %w", id, ticketID, err)
		}
		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("delete comment %d of ticket %d: %w", id, ticketID, err)
		}
		return nil
	})
}
