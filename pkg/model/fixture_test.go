package model

import (
	"database/sql"
	"testing"

	"github.com/yumyai/vogdb/internal/testdb"
)

func newTestDB(t *testing.T) *sql.DB {
	return testdb.New(t)
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }
