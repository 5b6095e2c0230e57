package main

import (
	"github.com/spf13/cobra"

	"github.com/Ngoc-Cac/Big-Data-G4/sentiment"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the evaluation config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the config file with defaults filled in",
		Long: `config init loads the configured file (or starts from defaults when it does
not exist), fills every unset field with its default, and writes the result
back so the full setting surface is visible and editable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfgFile
			if path == "" {
				path = "config.json"
			}
			if err := sentiment.SaveConfig(path, cfg); err != nil {
				return err
			}
			logger.Printf("wrote %s", path)
			return nil
		},
	})
	return cmd
}
