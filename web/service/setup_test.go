package service

import (
	"path/filepath"
	"testing"

	"github.com/op/go-logging"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
)

// initTestDB points the global database at a fresh temp file. The seeded
// admin account is available afterwards.
func initTestDB(t *testing.T) {
	t.Helper()
	logger.InitLogger(logging.ERROR)
	if err := database.InitDB(filepath.Join(t.TempDir(), "daftar.db")); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	financeCache.Flush()
}

// createTestClient satisfies the invoice foreign key on a fresh database.
func createTestClient(t *testing.T) *model.Client {
	t.Helper()
	client := &model.Client{Name: "Test Client", Phone: "0500000000"}
	if err := (&ClientService{}).Create(client); err != nil {
		t.Fatalf("create test client: %v", err)
	}
	return client
}
