package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ngoc-Cac/Big-Data-G4/dataset"
	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

func newClassifyCmd() *cobra.Command {
	var (
		reviewsPath string
		model       string
	)
	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify raw reviews from arguments or a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if reviewsPath != "" {
				loaded, err := dataset.LoadReviews(reviewsPath)
				if err != nil {
					return err
				}
				texts = append(texts, loaded...)
			}
			if len(texts) == 0 {
				return errors.New("provide review text arguments or --reviews FILE")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			service, err := buildService(cfg)
			if err != nil {
				return err
			}
			defer service.Close()

			if model == "all" {
				results, err := service.PredictAll(cmd.Context(), texts)
				if err != nil {
					return err
				}
				names := service.ClassifierNames()
				for i, text := range texts {
					for _, name := range names {
						fmt.Printf("%-10s  %-8s  %s\n", name, sentiment.Label(results[name][i]), text)
					}
				}
				return nil
			}
			labels, err := service.PredictBatch(cmd.Context(), model, texts)
			if err != nil {
				return err
			}
			for i, text := range texts {
				fmt.Printf("%-8s  %s\n", sentiment.Label(labels[i]), text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reviewsPath, "reviews", "", "text file with one review per line")
	cmd.Flags().StringVar(&model, "model", "logistic", "classifier head to use, or \"all\" for every head")
	return cmd
}
