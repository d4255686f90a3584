package model

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid сообщает, является ли значение одним из трёх допустимых статусов
// (сравнение буквальное, с учётом регистра и пробела).
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

type Ticket struct {
	ID          uint64       `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(100);not null" json:"title"`
	Description string       `gorm:"type:varchar(1000);not null" json:"description"`
	Status      TicketStatus `gorm:"type:varchar(32);index;not null" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`
}

type Comment struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	TicketID uint64 `gorm:"index;not null" json:"ticketId"`
	Text     string `gorm:"type:varchar(500);not null" json:"text"`

	CreatedAt time.Time `json:"createdAt"`
}
