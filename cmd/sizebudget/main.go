package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sizebudget/internal/version"
)

// errBudgetsFailed signals a non-zero exit after the report was already printed.
var errBudgetsFailed = errors.New("budgets failed")

var rootCmd = &cobra.Command{
	Use:   "sizebudget",
	Short: "Check build output against size budgets",
	Long: `sizebudget evaluates a build's chunks and assets against the budgets in
budgets.toml and reports every threshold that was crossed.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics printed per manifest (0=unlimited)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("config", "", "path to budgets.toml (default: search upwards from the working directory)")
}

// main runs the root command. Budget errors exit with status 1 without an
// extra message.
func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errBudgetsFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
