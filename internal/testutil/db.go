package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/10xdevs/flashgen/internal/store"
)

// NewStore opens a dedicated in-memory SQLite database for one test.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	st, err := store.New(gdb)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return st
}

func Logger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func CreateUser(t *testing.T, st *store.Store) *store.User {
	t.Helper()
	user := &store.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := st.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func CreateGeneration(t *testing.T, st *store.Store, userID string, totalGenerated int) *store.Generation {
	t.Helper()
	gen := &store.Generation{
		UserID:           userID,
		TotalGenerated:   totalGenerated,
		GenerationTimeMs: 42,
		AIModel:          "test-model",
	}
	if err := st.CreateGeneration(context.Background(), gen); err != nil {
		t.Fatalf("failed to create generation: %v", err)
	}
	return gen
}
