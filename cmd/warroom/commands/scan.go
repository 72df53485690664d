package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/scan"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [conservative|momentum]",
	Short: "Scan a watchlist pool and print the ranking",
	Long: `Runs the scoring pipeline over a watchlist pool and prints the
filtered ranking. The conservative pool keeps scores >= 70 ordered by
score; the momentum pool keeps scores >= 80 ordered by relative volume.

Example:
  go run ./cmd/warroom scan conservative
  go run ./cmd/warroom scan momentum --save`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var scanSave bool

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanSave, "save", false, "persist the filtered results")
}

func runScan(cmd *cobra.Command, args []string) error {
	poolName := args[0]
	if poolName != scan.PoolConservative && poolName != scan.PoolMomentum {
		return fmt.Errorf("unknown pool: %s (use: conservative, momentum)", poolName)
	}

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	var symbols []string
	var minScore int
	if poolName == scan.PoolConservative {
		symbols = d.cfg.Scan.ConservativePool
		minScore = d.cfg.Scan.ConservativeMinScore
	} else {
		symbols = d.cfg.Scan.MomentumPool
		minScore = d.cfg.Scan.MomentumMinScore
	}

	fmt.Printf("=== %s pool scan (%d tickers, min score %d) ===\n\n", poolName, len(symbols), minScore)

	results := d.scanner.ScanMany(ctx, symbols)

	var filtered []contracts.ScanResult
	if poolName == scan.PoolConservative {
		filtered = scan.FilterConservative(results, minScore)
	} else {
		filtered = scan.FilterMomentum(results, minScore)
	}

	if len(filtered) == 0 {
		fmt.Println("No tickers passed the filter")
		return nil
	}

	fmt.Printf("%-8s %10s %6s %7s %7s %9s %9s\n",
		"SYMBOL", "PRICE", "SCORE", "RVOL", "RSI", "vsMA200", "EARNINGS")
	for _, res := range filtered {
		earningsStr := fmt.Sprintf("%dd", res.EarningsDays)
		if res.EarningsDays == contracts.EarningsUnknown {
			earningsStr = "-"
		}

		fmt.Printf("%-8s %10.2f %6d %6.2fx %7.0f %+8.2f%% %9s\n",
			res.Symbol, res.Snapshot.Close, res.Score, res.Snapshot.RVol,
			res.Snapshot.RSI14, res.DistMA200Pct, earningsStr)
	}

	fmt.Printf("\n%d of %d tickers kept\n", len(filtered), len(symbols))

	if scanSave {
		date := time.Now().Truncate(24 * time.Hour)
		if err := d.scanRepo.SaveBatch(ctx, poolName, date, filtered); err != nil {
			return fmt.Errorf("save scan results: %w", err)
		}
		fmt.Println("Results saved")
	}

	return nil
}
