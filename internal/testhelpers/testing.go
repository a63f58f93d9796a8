package testhelpers

import (
	"fmt"
	"testing"

	"mangoadmi/internal/config"
	"mangoadmi/pkg/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
)

// SetupTestGateway opens a private in-memory SQLite database with the schema
// initialized. The pool is closed when the test finishes.
func SetupTestGateway(t *testing.T) *database.Gateway {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gw, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := gw.InitializeSchema(); err != nil {
		t.Fatalf("Failed to initialize test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = gw.Close()
	})
	return gw
}
