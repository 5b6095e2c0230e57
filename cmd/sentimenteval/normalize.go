package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

// normalize is a debugging aid for inspecting what the abbreviation
// dictionary does to a review before it reaches the encoder.
func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <text>",
		Short: "Show the cleaned, abbreviation-expanded form of a review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("provide review text to normalize")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dict, err := sentiment.LoadAbbreviations(cfg.AbbreviationFile, logger)
			if err != nil {
				return err
			}
			normalizer := sentiment.NewNormalizer(sentiment.WhitespaceTokenizer{}, dict)
			out, err := normalizer.Normalize(sentiment.CleanText(strings.Join(args, " ")))
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	return cmd
}
