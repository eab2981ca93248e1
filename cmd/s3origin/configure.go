package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a config file interactively",
	Long: `Write a config.yaml interactively.

You will be prompted for the bucket, prefix, store backend, endpoint,
credentials, and size limit. Existing files are only overwritten after
confirmation.`,
	RunE: runConfigure,
}

var configureOutput string

func init() {
	configureCmd.Flags().StringVarP(&configureOutput, "output", "o", "config.yaml", "output file path")
	rootCmd.AddCommand(configureCmd)
}

// configFile mirrors the YAML shape config.Load reads back.
type configFile struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Origin struct {
		Bucket  string `yaml:"bucket"`
		Prefix  string `yaml:"prefix,omitempty"`
		MaxSize int64  `yaml:"max_size,omitempty"`
		Mode    string `yaml:"mode"`
	} `yaml:"origin"`
	Store struct {
		Type      string `yaml:"type"`
		Region    string `yaml:"region,omitempty"`
		Endpoint  string `yaml:"endpoint,omitempty"`
		AccessKey string `yaml:"access_key,omitempty"`
		SecretKey string `yaml:"secret_key,omitempty"`
	} `yaml:"store"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runConfigure(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(configureOutput); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("File '%s' already exists. Overwrite it", configureOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	var cfg configFile
	cfg.Server.Port = 5917
	cfg.Log.Level = "info"

	bucketPrompt := promptui.Prompt{
		Label: "Bucket",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("bucket is required")
			}
			return nil
		},
	}
	bucket, err := bucketPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Origin.Bucket = bucket

	prefixPrompt := promptui.Prompt{
		Label: "Key prefix (empty for bucket root)",
	}
	if cfg.Origin.Prefix, err = prefixPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	modeSelect := promptui.Select{
		Label: "Index mode",
		Items: []string{"flat", "static", "spa"},
	}
	if _, cfg.Origin.Mode, err = modeSelect.Run(); err != nil {
		return handlePromptError(err)
	}

	maxSizePrompt := promptui.Prompt{
		Label:   "Maximum object size in bytes (0 for unbounded)",
		Default: "0",
		Validate: func(input string) error {
			n, parseErr := strconv.ParseInt(input, 10, 64)
			if parseErr != nil || n < 0 {
				return errors.New("must be a non-negative integer")
			}
			return nil
		},
	}
	maxSizeStr, err := maxSizePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Origin.MaxSize, _ = strconv.ParseInt(maxSizeStr, 10, 64)

	storeSelect := promptui.Select{
		Label: "Store backend",
		Items: []string{"aws", "minio"},
	}
	if _, cfg.Store.Type, err = storeSelect.Run(); err != nil {
		return handlePromptError(err)
	}

	regionPrompt := promptui.Prompt{
		Label:   "Region",
		Default: "us-east-1",
	}
	if cfg.Store.Region, err = regionPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	endpointPrompt := promptui.Prompt{
		Label: "Endpoint (empty for AWS default)",
	}
	if cfg.Store.Endpoint, err = endpointPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	accessKeyPrompt := promptui.Prompt{
		Label: "Access key (empty for the SDK credential chain)",
	}
	if cfg.Store.AccessKey, err = accessKeyPrompt.Run(); err != nil {
		return handlePromptError(err)
	}

	if cfg.Store.AccessKey != "" {
		secretKeyPrompt := promptui.Prompt{
			Label: "Secret key",
			Mask:  '*',
		}
		if cfg.Store.SecretKey, err = secretKeyPrompt.Run(); err != nil {
			return handlePromptError(err)
		}
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configureOutput, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s.\n", configureOutput)
	return nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
