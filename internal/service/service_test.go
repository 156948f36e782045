package service

import (
	"fmt"
	"strings"
	"testing"

	"zapzap/backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Each test gets its own named in-memory database. cache=shared keeps the
// database alive across the connections of gorm's pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB("sqlite", dsn)
	require.NoError(t, err)
	return db
}
