package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestBackfillTimezone_ReturnsExecError(t *testing.T) {
	// nothing listens on port 1, so every statement fails
	db, err := gorm.Open(
		postgres.Open("host=127.0.0.1 port=1 user=page dbname=page sslmode=disable connect_timeout=1"),
		&gorm.Config{
			DisableAutomaticPing: true,
			Logger:               gormlogger.Discard,
		},
	)
	require.NoError(t, err)

	err = backfillTimezone(db, "America/Sao_Paulo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backfill page timezone")
}
