package jobs

import (
	"context"
	"time"

	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// WebhookRetryJobName is the name of the failed delivery retry job
const WebhookRetryJobName = "webhook_retry"

// webhookRetryTimeout bounds a single retry sweep
const webhookRetryTimeout = 2 * time.Minute

// webhookPageSize is the page size used when walking webhooks and deliveries
const webhookPageSize = 100

// WebhookRetryJob sweeps failed webhook deliveries and requests a
// redelivery for each, up to a per-run batch cap.
type WebhookRetryJob struct {
	actions   *action.Runner
	logger    *zap.Logger
	batchSize int
}

// NewWebhookRetryJob creates a new failed delivery retry job.
func NewWebhookRetryJob(actions *action.Runner, logger *zap.Logger, batchSize int) *WebhookRetryJob {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &WebhookRetryJob{
		actions:   actions,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Run executes one retry sweep. It walks active webhooks, lists their
// failed deliveries and requests a redelivery for each until the batch
// cap is reached. Individual retry failures are logged and skipped so
// one broken endpoint cannot stall the sweep.
func (j *WebhookRetryJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), webhookRetryTimeout)
	defer cancel()

	retried := 0
	failed := 0
	page := 1

	for retried+failed < j.batchSize {
		webhooks, err := j.actions.ListWebhooks(ctx, domain.ListOptions{Page: page, PageSize: webhookPageSize})
		if err != nil {
			return err
		}
		if len(webhooks.Items) == 0 {
			break
		}

		for _, wh := range webhooks.Items {
			if !wh.IsActive {
				continue
			}
			if retried+failed >= j.batchSize {
				break
			}

			deliveries, err := j.actions.ListDeliveries(ctx, wh.ID,
				domain.ListOptions{Page: 1, PageSize: j.batchSize},
				domain.DeliveryStatusFailed)
			if err != nil {
				j.logger.Warn("failed to list deliveries for retry sweep",
					zap.String("webhook_id", wh.ID.String()),
					zap.Error(err))
				continue
			}

			for _, d := range deliveries.Items {
				if retried+failed >= j.batchSize {
					break
				}
				if _, err := j.actions.RetryDelivery(ctx, wh.ID, d.ID); err != nil {
					failed++
					j.logger.Warn("delivery retry failed",
						zap.String("webhook_id", wh.ID.String()),
						zap.String("delivery_id", d.ID.String()),
						zap.Error(err))
					continue
				}
				retried++
			}
		}

		if webhooks.Next == nil {
			break
		}
		page++
	}

	j.logger.Info("webhook retry sweep completed",
		zap.Int("retried", retried),
		zap.Int("failed", failed))
	return nil
}

// RegisterWebhookRetryJob registers the retry sweep with the scheduler.
func RegisterWebhookRetryJob(scheduler *Scheduler, actions *action.Runner, logger *zap.Logger, cfg *config.JobsConfig) error {
	job := NewWebhookRetryJob(actions, logger, cfg.WebhookRetryBatchSize)
	return scheduler.AddJob(WebhookRetryJobName, cfg.WebhookRetryCron, job.Run)
}
