package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open открывает соединение с PostgreSQL через gorm.
// NowFunc переопределён на UTC, чтобы все временные метки хранились без смещения.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
}
