package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ngoc-Cac/Big-Data-G4/dataset"
	"github.com/Ngoc-Cac/Big-Data-G4/eval"
	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

func newEvaluateCmd() *cobra.Command {
	var (
		testPath  string
		batchSize int
		workers   int
		models    []string
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run classifier heads over a labelled test set and print reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if testPath == "" {
				return errors.New("missing required --test file")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if batchSize > 0 {
				cfg.BatchSize = batchSize
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			records, err := dataset.LoadCSV(testPath)
			if err != nil {
				return err
			}
			logger.Printf("loaded %d test records from %s", len(records), testPath)

			service, err := buildService(cfg)
			if err != nil {
				return err
			}
			defer service.Close()

			if len(models) == 0 {
				models = service.ClassifierNames()
			}

			runner := eval.Runner{
				NumLabels: sentiment.NumLabels,
				Workers:   cfg.Workers,
			}
			type outcome struct {
				name   string
				report eval.Report
			}
			outcomes := make([]outcome, 0, len(models))
			for _, name := range models {
				predict, err := service.Predictor(name)
				if err != nil {
					return err
				}
				src := dataset.NewSliceSource(records, cfg.BatchSize)
				matrix, err := runner.Run(cmd.Context(), src, predict)
				if err != nil {
					return fmt.Errorf("evaluate %s: %w", name, err)
				}
				report := eval.NewReport(matrix, sentiment.LabelNames())
				outcomes = append(outcomes, outcome{name: name, report: report})

				fmt.Printf("\n=== %s ===\n%s\n", name, report)
				printConfusion(matrix)
			}

			fmt.Println("\nModel comparison:")
			for _, o := range outcomes {
				fmt.Printf("  %-10s accuracy %.4f  macro-F1 %.4f\n",
					o.name, o.report.Accuracy, o.report.MacroAvg.F1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&testPath, "test", "", "CSV file with text,label test records")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "records per evaluation batch (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel evaluation workers (overrides config)")
	cmd.Flags().StringSliceVar(&models, "model", nil, "classifier heads to evaluate (default: all)")
	return cmd
}

func printConfusion(m *eval.ConfusionMatrix) {
	names := sentiment.LabelNames()
	fmt.Printf("%-10s", "pred\\true")
	for _, name := range names {
		fmt.Printf("  %8s", name)
	}
	fmt.Println()
	for p := 0; p < m.NumLabels(); p++ {
		fmt.Printf("%-10s", names[p])
		for t := 0; t < m.NumLabels(); t++ {
			fmt.Printf("  %8d", m.At(p, t))
		}
		fmt.Println()
	}
}
