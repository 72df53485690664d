package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minglun/v32/backend/internal/scheduler"
	"github.com/minglun/v32/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the job scheduler",
	Long: `Starts the cron scheduler with the standing jobs:
- pool_scan:       rescan both watchlist pools after the US close
- regime_refresh:  refresh the benchmark regime hourly

Example:
  go run ./cmd/warroom scheduler
  go run ./cmd/warroom scheduler --run-now pool_scan`,
	RunE: runScheduler,
}

var schedulerRunNow string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&schedulerRunNow, "run-now", "", "run the named job immediately on startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== V32 Warroom Scheduler ===")

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched := scheduler.New(d.log)

	poolScan := jobs.NewPoolScanJob(d.scanner, d.scanRepo, d.cfg, d.log)
	regimeRefresh := jobs.NewRegimeRefreshJob(d.marketService, d.log)

	for _, job := range []scheduler.Job{poolScan, regimeRefresh} {
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("add job %s: %w", job.Name(), err)
		}
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow != "" {
		if err := sched.RunJob(schedulerRunNow); err != nil {
			return fmt.Errorf("run job now: %w", err)
		}
	}

	fmt.Println("Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
