package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minglun/v32/backend/internal/contracts"
)

// holdingsCmd represents the holdings command group
var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Inspect stored positions",
	Long: `Lists stored positions or builds the advisory report joining each
position with its fresh scan result.

Example:
  go run ./cmd/warroom holdings list
  go run ./cmd/warroom holdings report`,
}

var holdingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored positions",
	RunE:  runHoldingsList,
}

var holdingsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the holdings advisory report",
	RunE:  runHoldingsReport,
}

func init() {
	rootCmd.AddCommand(holdingsCmd)
	holdingsCmd.AddCommand(holdingsListCmd)
	holdingsCmd.AddCommand(holdingsReportCmd)
}

func runHoldingsList(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	positions, err := d.holdingsRepo.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list positions: %w", err)
	}

	if len(positions) == 0 {
		fmt.Println("No positions stored")
		return nil
	}

	fmt.Printf("%-4s %-8s %-11s %10s %10s  %s\n", "ID", "CODE", "TYPE", "COST", "SHARES", "NOTE")
	for _, p := range positions {
		fmt.Printf("%-4d %-8s %-11s %10.2f %10.2f  %s\n", p.ID, p.Code, p.Type, p.Cost, p.Shares, p.Note)
	}

	return nil
}

func runHoldingsReport(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	fmt.Println("=== Holdings Advisory Report ===")

	reports, totalProfit, err := d.evaluator.Report(cmd.Context())
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if len(reports) == 0 {
		fmt.Println("No holdings to report")
		return nil
	}

	fmt.Printf("\n%-8s %10s %10s %12s %9s %6s %9s  %s\n",
		"CODE", "COST", "PRICE", "PROFIT", "RETURN", "SCORE", "EARNINGS", "ADVICE")
	for _, rep := range reports {
		earningsStr := fmt.Sprintf("%dd", rep.EarningsDays)
		if rep.EarningsDays == contracts.EarningsUnknown {
			earningsStr = "-"
		}

		fmt.Printf("%-8s %10.2f %10.2f %+12.0f %+8.2f%% %6d %9s  %s\n",
			rep.Code, rep.Cost, rep.Price, rep.Profit, rep.ProfitPct,
			rep.Score, earningsStr, rep.Advice)
	}

	fmt.Printf("\nTotal profit: %+.0f\n", totalProfit)
	return nil
}
