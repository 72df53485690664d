package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minglun/v32/backend/internal/contracts"
)

// marketCmd represents the market command
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show the benchmark market regime",
	Long: `Fetches benchmark index history, computes the moving averages and
prints the current regime classification.

Example:
  go run ./cmd/warroom market`,
	RunE: runMarket,
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	status := d.marketService.Status(cmd.Context())

	fmt.Println("=== Market Regime ===")
	fmt.Printf("Benchmark: %s\n", status.Symbol)
	fmt.Printf("Regime:    %s %s\n", regimeBadge(status.Regime), status.Regime)

	if status.Regime != contracts.RegimeUnknown {
		fmt.Printf("Price:     %.0f\n", status.Price)
		fmt.Printf("MA200:     %.0f\n", status.MA200)
	}

	return nil
}

// regimeBadge maps a regime onto a traffic-light marker
func regimeBadge(r contracts.Regime) string {
	switch r {
	case contracts.RegimeBullish:
		return "🟢"
	case contracts.RegimeCorrection:
		return "🟡"
	case contracts.RegimeWeak:
		return "🟠"
	case contracts.RegimeBearish:
		return "🔴"
	default:
		return "⚪"
	}
}
