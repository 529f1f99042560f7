package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/movie-booking-assistant/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{DBUser: "app", DBHost: "db", DBPort: "3306", DBName: "movies"}
	assert.Equal(t, "app@tcp(db:3306)/movies?charset=utf8mb4&parseTime=true&loc=UTC", DSN(cfg))

	cfg.DBPass = "secret"
	assert.Equal(t, "app:secret@tcp(db:3306)/movies?charset=utf8mb4&parseTime=true&loc=UTC", DSN(cfg))
}
