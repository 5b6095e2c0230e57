// sentimenteval evaluates pretrained Vietnamese sentiment classifiers over a
// labelled review test set and reports comparative metrics.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

var (
	cfgFile string
	logger  = log.New(os.Stdout, "", log.LstdFlags)
)

var rootCmd = &cobra.Command{
	Use:   "sentimenteval",
	Short: "Evaluate Vietnamese restaurant-review sentiment classifiers",
	Long: `sentimenteval runs a pretrained transformer encoder plus classifier heads
over labelled restaurant reviews and prints per-class precision, recall and
F1 together with accuracy and macro/weighted averages.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newConfigCmd())
}

func loadConfig() (sentiment.Config, error) {
	cfg, err := sentiment.LoadConfig(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildService wires the encoder, normalizer and both classifier heads from
// the configuration. The caller owns the returned service and must Close it.
func buildService(cfg sentiment.Config) (*sentiment.Service, error) {
	dict, err := sentiment.LoadAbbreviations(cfg.AbbreviationFile, logger)
	if err != nil {
		return nil, err
	}
	normalizer := sentiment.NewNormalizer(sentiment.WhitespaceTokenizer{}, dict)

	encoder, err := sentiment.NewOrtEncoder(cfg.Encoder)
	if err != nil {
		return nil, fmt.Errorf("init encoder: %w", err)
	}
	service, err := sentiment.NewService(encoder, normalizer, logger)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("init service: %w", err)
	}

	linear, err := sentiment.LoadLinearModel(cfg.LinearModelPath)
	if err != nil {
		service.Close()
		return nil, err
	}
	if err := service.RegisterClassifier("logistic", linear); err != nil {
		service.Close()
		return nil, err
	}
	neural, err := sentiment.LoadNeuralModel(cfg.NeuralModelPath)
	if err != nil {
		service.Close()
		return nil, err
	}
	if err := service.RegisterClassifier("neural", neural); err != nil {
		service.Close()
		return nil, err
	}
	return service, nil
}
