package jobs_test

import (
	"testing"
	"time"

	"github.com/pocketledger/actions-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_EmptyCronExprDisablesJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("disabled_job", "", func() error { return nil })
	require.NoError(t, err)
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_RejectsDuplicateJobName(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("sweep", "@hourly", func() error { return nil }))
	err := s.AddJob("sweep", "@hourly", func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, []string{"sweep"}, s.GetJobNames())
}

func TestScheduler_RejectsInvalidCronExpr(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("broken", "not a cron expression", func() error { return nil })
	require.Error(t, err)
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_RunsRegisteredJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	ran := make(chan struct{}, 1)

	require.NoError(t, s.AddJob("tick", "@every 50ms", func() error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer func() { <-s.Stop().Done() }()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run within deadline")
	}
}
