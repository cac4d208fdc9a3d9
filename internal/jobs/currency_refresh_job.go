package jobs

import (
	"context"
	"time"

	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/config"
	"go.uber.org/zap"
)

// CurrencyRefreshJobName is the name of the currency catalog refresh job
const CurrencyRefreshJobName = "currency_refresh"

const currencyRefreshTimeout = 30 * time.Second

// CurrencyRefreshJob drops the cached currency catalog and warms it
// with a fresh copy from the core API.
type CurrencyRefreshJob struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewCurrencyRefreshJob creates a new currency refresh job.
func NewCurrencyRefreshJob(actions *action.Runner, logger *zap.Logger) *CurrencyRefreshJob {
	return &CurrencyRefreshJob{actions: actions, logger: logger}
}

// Run executes one refresh.
func (j *CurrencyRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), currencyRefreshTimeout)
	defer cancel()
	return j.actions.RefreshCurrencies(ctx)
}

// RegisterCurrencyRefreshJob registers the currency refresh with the scheduler.
func RegisterCurrencyRefreshJob(scheduler *Scheduler, actions *action.Runner, logger *zap.Logger, cfg *config.JobsConfig) error {
	job := NewCurrencyRefreshJob(actions, logger)
	return scheduler.AddJob(CurrencyRefreshJobName, cfg.CurrencyRefreshCron, job.Run)
}
