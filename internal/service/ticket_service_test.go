package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/psds-microservice/support-ticket-api/internal/errs"
	"github.com/psds-microservice/support-ticket-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketService_Create(t *testing.T) {
	svc := NewTicketService(newTestDB(t))

	ticket, err := svc.Create(context.Background(), "Printer broken", "No toner")
	require.NoError(t, err)

	assert.NotZero(t, ticket.ID)
	assert.Equal(t, model.TicketStatusOpen, ticket.Status)
	assert.Empty(t, ticket.Comments)
	assert.False(t, ticket.CreatedAt.IsZero())
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)
}

func TestTicketService_Create_Validation(t *testing.T) {
	svc := NewTicketService(newTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", "ok"},
		{"title too long", strings.Repeat("a", 101), "ok"},
		{"empty description", "ok", ""},
		{"description too long", "ok", strings.Repeat("a", 1001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.title, tt.description)
			assert.ErrorIs(t, err, errs.ErrInvalidArgument)
		})
	}

	var count int64
	require.NoError(t, svc.db.Model(&model.Ticket{}).Count(&count).Error)
	assert.Zero(t, count, "validation failures must not persist anything")
}

func TestTicketService_Create_MaxLengthsAccepted(t *testing.T) {
	svc := NewTicketService(newTestDB(t))

	ticket, err := svc.Create(context.Background(), strings.Repeat("t", 100), strings.Repeat("d", 1000))
	require.NoError(t, err)
	assert.NotZero(t, ticket.ID)
}

func TestTicketService_GetByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seeded := seedTicket(t, db, "with comments", model.TicketStatusOpen, now)
	seedComment(t, db, seeded.ID, "second", now.Add(time.Minute))
	seedComment(t, db, seeded.ID, "first", now.Add(-time.Minute))

	ticket, err := svc.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, ticket.ID)
	require.Len(t, ticket.Comments, 2)
	assert.Equal(t, "first", ticket.Comments[0].Text, "comments must be ordered oldest-first")
	assert.Equal(t, "second", ticket.Comments[1].Text)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
}

func TestTicketService_List(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	oldest := seedTicket(t, db, "oldest", model.TicketStatusOpen, now.Add(-2*time.Hour))
	closed := seedTicket(t, db, "closed", model.TicketStatusClosed, now.Add(-time.Hour))
	newest := seedTicket(t, db, "newest", model.TicketStatusOpen, now)

	items, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, newest.ID, items[0].ID, "tickets must be ordered newest-first")
	assert.Equal(t, closed.ID, items[1].ID)
	assert.Equal(t, oldest.ID, items[2].ID)

	open, err := svc.List(ctx, "Open")
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, item := range open {
		assert.Equal(t, model.TicketStatusOpen, item.Status)
	}

	inProgress, err := svc.List(ctx, "In Progress")
	require.NoError(t, err)
	assert.Empty(t, inProgress, "empty result set is valid, not an error")
}

func TestTicketService_List_InvalidStatus(t *testing.T) {
	svc := NewTicketService(newTestDB(t))

	for _, status := range []string{"open", "InProgress", "closed", "nope"} {
		_, err := svc.List(context.Background(), status)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, "status %q", status)
	}
}

func TestTicketService_Update(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Printer broken", "No toner")
	require.NoError(t, err)
	before, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	status := "Closed"
	updated, err := svc.Update(ctx, created.ID, nil, &status)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusClosed, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt must strictly increase")

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusClosed, stored.Status)
	assert.True(t, stored.CreatedAt.Equal(before.CreatedAt), "createdAt is immutable")
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestTicketService_Update_DescriptionOnly(t *testing.T) {
	svc := NewTicketService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Printer broken", "No toner")
	require.NoError(t, err)

	desc := "Replaced toner, still broken"
	updated, err := svc.Update(ctx, created.ID, &desc, nil)
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, model.TicketStatusOpen, updated.Status)
}

func TestTicketService_Update_NothingToUpdate(t *testing.T) {
	svc := NewTicketService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Printer broken", "No toner")
	require.NoError(t, err)
	before, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	sameDesc := created.Description
	sameStatus := string(created.Status)
	empty := ""

	tests := []struct {
		name        string
		description *string
		status      *string
	}{
		{"no fields", nil, nil},
		{"empty strings", &empty, &empty},
		{"identical values", &sameDesc, &sameStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, created.ID, tt.description, tt.status)
			assert.ErrorIs(t, err, errs.ErrNothingToUpdate)
		})
	}

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(before.UpdatedAt), "rejected no-op must leave the ticket unchanged")
}

func TestTicketService_Update_Errors(t *testing.T) {
	svc := NewTicketService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Printer broken", "No toner")
	require.NoError(t, err)

	bad := "Resolved"
	_, err = svc.Update(ctx, created.ID, nil, &bad)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	long := strings.Repeat("a", 1001)
	_, err = svc.Update(ctx, created.ID, &long, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	status := "Closed"
	_, err = svc.Update(ctx, 9999, nil, &status)
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
}

func TestTicketService_Delete_Cascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Printer broken", "No toner")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "Keyboard broken", "Sticky keys")
	require.NoError(t, err)

	c1, err := comments.Create(ctx, created.ID, "looking into it")
	require.NoError(t, err)
	_, err = comments.Create(ctx, created.ID, "ordered a part")
	require.NoError(t, err)
	kept, err := comments.Create(ctx, other.ID, "unrelated")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
	_, err = comments.GetByID(ctx, created.ID, c1.ID)
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Where("ticket_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count, "cascade must remove all comments of the deleted ticket")

	// Comments of other tickets are untouched.
	got, err := comments.GetByID(ctx, other.ID, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "unrelated", got.Text)
}

func TestTicketService_Delete_NotFound(t *testing.T) {
	svc := NewTicketService(newTestDB(t))
	assert.ErrorIs(t, svc.Delete(context.Background(), 9999), errs.ErrTicketNotFound)
}
