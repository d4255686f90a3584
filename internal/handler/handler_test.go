package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/psds-microservice/support-ticket-api/internal/handler"
	"github.com/psds-microservice/support-ticket-api/internal/kafka"
	"github.com/psds-microservice/support-ticket-api/internal/model"
	"github.com/psds-microservice/support-ticket-api/internal/router"
	"github.com/psds-microservice/support-ticket-api/internal/service"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer собирает полный роутер поверх in-memory sqlite:
// тесты проходят тот же путь, что и боевые запросы, включая маршрутизацию.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Ticket{}, &model.Comment{}))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer := kafka.NewProducer(nil, "", log)

	ticketHandler := handler.NewTicketHandler(service.NewTicketService(db), producer, log)
	commentHandler := handler.NewCommentHandler(service.NewCommentService(db), producer, log)
	return router.New(ticketHandler, commentHandler)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
