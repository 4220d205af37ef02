package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sizebudget/internal/budget"
	"sizebudget/internal/diag"
	"sizebudget/internal/diagfmt"
)

var assetCmd = &cobra.Command{
	Use:   "asset [flags] <file>...",
	Short: "Check individual stylesheets against anyComponentStyle budgets",
	Long: `Measure each file on disk and evaluate it in isolation against the
anyComponentStyle budgets. Other budget types are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsset,
}

func init() {
	addReportFlags(assetCmd)
}

func runAsset(cmd *cobra.Command, args []string) error {
	opts, err := readReportOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	style, other := budget.SplitComponentStyle(cfg.Rules)
	if len(style) == 0 {
		log.Warn().Str("config", cfg.Path).Msg("no anyComponentStyle budgets configured")
		return nil
	}
	log.Debug().Int("style", len(style)).Int("ignored", len(other)).Msg("asset budgets")

	reports := make([]diagfmt.Report, 0, len(args))
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		bag := diag.NewBag(0)
		err = budget.CheckAsset(style, filepath.ToSlash(path), info.Size(), diag.BagReporter{Bag: bag})
		bag.Filter(opts.filter)
		reports = append(reports, diagfmt.Report{Bag: bag, Err: err})
	}
	if err := renderReports(cmd.OutOrStdout(), reports, opts, cmd.CommandPath(), args); err != nil {
		return err
	}
	if failed(reports) {
		return errBudgetsFailed
	}
	return nil
}
