package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "s3origin",
	Short:   "HTTP origin server for objects in an S3 bucket",
	Long: `s3origin serves the contents of an object-storage bucket as an
HTTP resource tree, for hosting static front-end assets straight
from a bucket behind a proxy or serverless front.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket to serve (env: S3ORIGIN_ORIGIN_BUCKET)")
	rootCmd.PersistentFlags().String("prefix", "", "key prefix objects are served under (env: S3ORIGIN_ORIGIN_PREFIX)")
	rootCmd.PersistentFlags().String("store-type", "", "object store backend: aws, minio (default: aws, env: S3ORIGIN_STORE_TYPE)")
	rootCmd.PersistentFlags().String("endpoint", "", "custom store endpoint for S3-compatible services (env: S3ORIGIN_STORE_ENDPOINT)")
	rootCmd.PersistentFlags().String("region", "", "bucket region (default: us-east-1, env: S3ORIGIN_STORE_REGION)")

	_ = viper.BindPFlag("origin.bucket", rootCmd.PersistentFlags().Lookup("bucket"))
	_ = viper.BindPFlag("origin.prefix", rootCmd.PersistentFlags().Lookup("prefix"))
	_ = viper.BindPFlag("store.type", rootCmd.PersistentFlags().Lookup("store-type"))
	_ = viper.BindPFlag("store.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("store.region", rootCmd.PersistentFlags().Lookup("region"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
