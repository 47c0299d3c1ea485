package dbctx

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type ctxKey struct{}

func TestContextDB(t *testing.T) {
	if (Context{}).DB(nil) != nil {
		t.Fatalf("expected nil without tx or fallback")
	}

	db, err := gorm.Open(sqlite.Open("file:dbctx_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	got := Context{Ctx: ctx}.DB(db)
	if got == nil || got.Statement.Context.Value(ctxKey{}) != "v" {
		t.Fatalf("fallback handle not bound to request context")
	}

	tx := db.Begin()
	t.Cleanup(func() { tx.Rollback() })
	inTx := Context{Tx: tx}.DB(db)
	if inTx == nil || inTx.Statement.ConnPool != tx.Statement.ConnPool {
		t.Fatalf("expected the transaction handle to win over fallback")
	}
	if inTx.Statement.Context == nil {
		t.Fatalf("expected background context when Ctx is nil")
	}
}
