package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/pkg/config"
)

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"DEBUG", logger.Info},
		{"info", logger.Warn},
		{"Warning", logger.Error},
		{"ERROR", logger.Silent},
		{"", logger.Warn},
	}
	for _, tt := range tests {
		if got := gormLogLevel(tt.in); got != tt.want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDisabledDatabase(t *testing.T) {
	ctx := context.Background()
	d, err := New(ctx, &config.DatabaseConfig{Enabled: false}, "INFO")
	if err != nil || d != nil {
		t.Fatalf("disabled database: %v %v", d, err)
	}
	if err := d.Health(ctx); !errors.Is(err, ErrDisabled) {
		t.Errorf("Health: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	repo := NewAnalysisRepository(d)
	if err := repo.Create(ctx, &models.AnalyzedComment{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Create: %v", err)
	}
	if _, err := repo.GetByHash(ctx, "abc"); !errors.Is(err, ErrDisabled) {
		t.Errorf("GetByHash: %v", err)
	}
	if _, err := repo.CountByLanguage(ctx); !errors.Is(err, ErrDisabled) {
		t.Errorf("CountByLanguage: %v", err)
	}
}

// TestCreateUpsertGuard checks the generated statement without a server:
// a repeated hash updates the row unless that would replace an ANALYZED
// result with a failed one.
func TestCreateUpsertGuard(t *testing.T) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=lokvaani dbname=lokvaani sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var sql string
	err = gdb.Callback().Create().After("gorm:create").Register("test:capture", func(tx *gorm.DB) {
		sql = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatal(err)
	}

	repo := &AnalysisRepository{db: gdb}
	rec := &models.AnalyzedComment{ContentHash: "0123456789abcdef0123456789abcdef", Status: models.StatusFailed}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, want := range []string{
		`ON CONFLICT ("content_hash") DO UPDATE SET`,
		`"status"="excluded"."status"`,
		`"processing_error"="excluded"."processing_error"`,
		`WHERE analyzed_comments.status <> $`,
		`OR excluded.status = $`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("statement missing %q:\n%s", want, sql)
		}
	}
	if strings.Contains(sql, "DO NOTHING") {
		t.Errorf("statement ignores conflicts:\n%s", sql)
	}
}
