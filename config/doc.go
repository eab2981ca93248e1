// Package config loads and validates s3origin configuration.
//
// Configuration is merged from four sources, highest precedence first:
// CLI flags, environment variables (prefix S3ORIGIN, dots become
// underscores, e.g. S3ORIGIN_ORIGIN_BUCKET), YAML config files, and
// built-in defaults.
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load validates the merged result with go-playground/validator; an invalid
// configuration is rejected at startup, never discovered per-request.
package config
