package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/psds-microservice/support-ticket-api/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory sqlite: every connection gets its own database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Ticket{}, &model.Comment{}))
	return db
}

func seedTicket(t *testing.T, db *gorm.DB, title string, status model.TicketStatus, createdAt time.Time) *model.Ticket {
	t.Helper()
	ticket := &model.Ticket{
		Title:       title,
		Description: "seeded",
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func seedComment(t *testing.T, db *gorm.DB, ticketID uint64, text string, createdAt time.Time) *model.Comment {
	t.Helper()
	c := &model.Comment{
		TicketID:  ticketID,
		Text:      text,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
