package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
}

func (j *stubJob) Name() string                  { return j.name }
func (j *stubJob) Run(ctx context.Context) error { return nil }
func (j *stubJob) Schedule() string              { return j.schedule }

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json", Env: "development"})
}

func TestAddJob(t *testing.T) {
	sched := New(testLogger())
	job := &stubJob{name: "pool_scan", schedule: "0 30 16 * * 1-5"}

	require.NoError(t, sched.AddJob(job))

	// Duplicate names are rejected
	assert.Error(t, sched.AddJob(job))
}

func TestAddJobBadSchedule(t *testing.T) {
	sched := New(testLogger())
	job := &stubJob{name: "broken", schedule: "not a cron expression"}

	assert.Error(t, sched.AddJob(job))
}

func TestRunJobUnknown(t *testing.T) {
	sched := New(testLogger())

	assert.Error(t, sched.RunJob("missing"))
}

func TestGetJobHistory(t *testing.T) {
	sched := New(testLogger())
	job := &stubJob{name: "regime_refresh", schedule: "0 0 * * * 1-5"}
	require.NoError(t, sched.AddJob(job))

	history, err := sched.GetJobHistory("regime_refresh")
	require.NoError(t, err)
	assert.Empty(t, history.Results)

	_, err = sched.GetJobHistory("missing")
	assert.Error(t, err)
}

func TestJobHistoryCapsResults(t *testing.T) {
	history := &JobHistory{}

	for i := 0; i < 150; i++ {
		history.AddResult(JobResult{JobName: fmt.Sprintf("job-%d", i), Success: true})
	}

	assert.Len(t, history.Results, 100)
	assert.Equal(t, "job-50", history.Results[0].JobName)

	latest := history.GetLatestResults(3)
	require.Len(t, latest, 3)
	assert.Equal(t, "job-149", latest[2].JobName)

	assert.Empty(t, history.GetLatestResults(0))
}
