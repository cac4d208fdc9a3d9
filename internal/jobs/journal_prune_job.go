package jobs

import (
	"context"
	"time"

	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/journal"
	"go.uber.org/zap"
)

// JournalPruneJobName is the name of the action journal retention job
const JournalPruneJobName = "journal_prune"

const journalPruneTimeout = 5 * time.Minute

// JournalPruneJob deletes action records older than the configured
// retention window.
type JournalPruneJob struct {
	journal   *journal.Service
	logger    *zap.Logger
	retention time.Duration
}

// NewJournalPruneJob creates a new journal prune job.
func NewJournalPruneJob(journalSvc *journal.Service, logger *zap.Logger, retention time.Duration) *JournalPruneJob {
	return &JournalPruneJob{
		journal:   journalSvc,
		logger:    logger,
		retention: retention,
	}
}

// Run executes one prune pass.
func (j *JournalPruneJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), journalPruneTimeout)
	defer cancel()

	removed, err := j.journal.Prune(ctx, j.retention)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logger.Info("pruned action records",
			zap.Int64("removed", removed),
			zap.Duration("retention", j.retention))
	}
	return nil
}

// RegisterJournalPruneJob registers the journal retention job with the scheduler.
func RegisterJournalPruneJob(scheduler *Scheduler, journalSvc *journal.Service, logger *zap.Logger, cfg *config.Config) error {
	job := NewJournalPruneJob(journalSvc, logger, cfg.Journal.RetentionDuration())
	return scheduler.AddJob(JournalPruneJobName, cfg.Jobs.JournalPruneCron, job.Run)
}
