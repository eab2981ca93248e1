package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bucketlabs/s3origin/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the effective configuration",
	Long: `Load the configuration from files, environment, and flags, run
validation, and print the effective settings without starting a server.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	var files []string
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		files = append(files, configFile)
	}

	cfg, err := config.Load(files, cmd.Flags())
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Printf("configuration OK\n")
	fmt.Printf("  server.port:           %d\n", cfg.Server.Port)
	fmt.Printf("  origin.bucket:         %s\n", cfg.Origin.Bucket)
	fmt.Printf("  origin.prefix:         %s\n", cfg.Origin.Prefix)
	fmt.Printf("  origin.mode:           %s\n", cfg.Origin.Mode)
	fmt.Printf("  origin.max_size:       %d\n", cfg.Origin.MaxSize)
	fmt.Printf("  origin.prune_segments: %d\n", cfg.Origin.PruneSegments)
	fmt.Printf("  store.type:            %s\n", cfg.Store.Type)
	fmt.Printf("  store.region:          %s\n", cfg.Store.Region)
	if cfg.Store.Endpoint != "" {
		fmt.Printf("  store.endpoint:        %s\n", cfg.Store.Endpoint)
	}
	fmt.Printf("  log.level:             %s\n", cfg.Log.Level)
	return nil
}
