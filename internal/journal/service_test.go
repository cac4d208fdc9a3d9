package journal_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/auth"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupJournal(t *testing.T) (*journal.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "journal.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ActionRecord{}))
	return journal.NewService(journal.NewRepository(db), zap.NewNop()), db
}

func recordEntry(svc *journal.Service, ctx context.Context, action, resource, outcome string) {
	svc.Record(ctx, journal.Entry{
		Action:   action,
		Resource: resource,
		Endpoint: "/" + resource + "/",
		Method:   "GET",
		Outcome:  outcome,
		Duration: 12 * time.Millisecond,
	})
}

func TestService_RecordWritesRow(t *testing.T) {
	svc, db := setupJournal(t)

	recordEntry(svc, context.Background(), "accounts.list", "accounts", domain.OutcomeSuccess)

	var rows []domain.ActionRecord
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "accounts.list", rows[0].Action)
	assert.Equal(t, int64(12), rows[0].DurationMs)
	assert.NotEqual(t, uuid.Nil, rows[0].ID)
	assert.Nil(t, rows[0].UserID)
}

func TestService_RecordCapturesUserFromContext(t *testing.T) {
	svc, db := setupJournal(t)
	userID := uuid.New()

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: userID})
	recordEntry(svc, ctx, "budgets.create", "budgets", domain.OutcomeSuccess)

	var rows []domain.ActionRecord
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, userID, *rows[0].UserID)
}

func TestService_RecordWritesRowWhenContextExpired(t *testing.T) {
	svc, db := setupJournal(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	recordEntry(svc, ctx, "accounts.get", "accounts", domain.OutcomeExecutionFailed)

	var rows []domain.ActionRecord
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.OutcomeExecutionFailed, rows[0].Outcome)
}

func TestService_RecordWritesRowWhenContextCancelled(t *testing.T) {
	svc, db := setupJournal(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recordEntry(svc, ctx, "accounts.list", "accounts", domain.OutcomeExecutionFailed)

	var rows []domain.ActionRecord
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
}

func TestService_RecordTruncatesDetail(t *testing.T) {
	svc, db := setupJournal(t)

	svc.Record(context.Background(), journal.Entry{
		Action:   "accounts.get",
		Resource: "accounts",
		Endpoint: "/accounts/x/",
		Method:   "GET",
		Outcome:  domain.OutcomeExecutionFailed,
		Detail:   strings.Repeat("x", 2000),
	})

	var rows []domain.ActionRecord
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Detail, 1000)
}

func TestService_ListFiltersAndPaginates(t *testing.T) {
	svc, _ := setupJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		recordEntry(svc, ctx, "accounts.list", "accounts", domain.OutcomeSuccess)
	}
	recordEntry(svc, ctx, "budgets.list", "budgets", domain.OutcomeSuccess)
	recordEntry(svc, ctx, "accounts.create", "accounts", domain.OutcomeValidationFailed)

	records, total, err := svc.List(ctx, 1, 50, journal.ListFilter{Resource: "accounts"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, records, 6)

	records, total, err = svc.List(ctx, 1, 50, journal.ListFilter{Outcome: domain.OutcomeValidationFailed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "accounts.create", records[0].Action)

	records, total, err = svc.List(ctx, 2, 3, journal.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, records, 3)
}

func TestService_ListClampsPageArguments(t *testing.T) {
	svc, _ := setupJournal(t)
	recordEntry(svc, context.Background(), "accounts.list", "accounts", domain.OutcomeSuccess)

	records, total, err := svc.List(context.Background(), -1, 9999, journal.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
}

func TestService_ListSinceFilter(t *testing.T) {
	svc, db := setupJournal(t)
	ctx := context.Background()

	recordEntry(svc, ctx, "accounts.list", "accounts", domain.OutcomeSuccess)
	// Backdate the first row
	require.NoError(t, db.Model(&domain.ActionRecord{}).
		Where("1 = 1").
		Update("created_at", time.Now().UTC().Add(-48*time.Hour)).Error)
	recordEntry(svc, ctx, "accounts.get", "accounts", domain.OutcomeSuccess)

	since := time.Now().UTC().Add(-time.Hour)
	records, total, err := svc.List(ctx, 1, 50, journal.ListFilter{Since: &since})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "accounts.get", records[0].Action)
}

func TestService_PruneRemovesOldRows(t *testing.T) {
	svc, db := setupJournal(t)
	ctx := context.Background()

	recordEntry(svc, ctx, "accounts.list", "accounts", domain.OutcomeSuccess)
	require.NoError(t, db.Model(&domain.ActionRecord{}).
		Where("1 = 1").
		Update("created_at", time.Now().UTC().Add(-40*24*time.Hour)).Error)
	recordEntry(svc, ctx, "accounts.get", "accounts", domain.OutcomeSuccess)

	removed, err := svc.Prune(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&domain.ActionRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
