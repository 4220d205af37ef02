package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sizebudget/internal/budget"
)

var sizeCmd = &cobra.Command{
	Use:   "size [flags] <expr>",
	Short: "Print the byte value of a size expression",
	Example: `  sizebudget size 1.5mb
  sizebudget size 10% --baseline 1mb --direction down`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseline, err := cmd.Flags().GetString("baseline")
		if err != nil {
			return fmt.Errorf("failed to get baseline flag: %w", err)
		}
		direction, err := cmd.Flags().GetString("direction")
		if err != nil {
			return fmt.Errorf("failed to get direction flag: %w", err)
		}
		return runSize(cmd.OutOrStdout(), args[0], baseline, direction)
	},
}

func init() {
	sizeCmd.Flags().String("baseline", "", "baseline size that relative expressions apply to")
	sizeCmd.Flags().String("direction", "up", "apply the expression above (up) or below (down) the baseline")
}

func readDirection(value string) (budget.Direction, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "up", "increase", "+":
		return budget.Increase, nil
	case "down", "decrease", "-":
		return budget.Decrease, nil
	default:
		return 0, fmt.Errorf("invalid --direction value %q (expected up|down)", value)
	}
}

func runSize(out io.Writer, expr, baseline, direction string) error {
	dir, err := readDirection(direction)
	if err != nil {
		return err
	}
	n, err := budget.ParseSize(expr, baseline, dir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d (%s)\n", n, budget.FormatBytes(n))
	return err
}
