package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpguard/guardkit/internal/config"
	"github.com/mcpguard/guardkit/internal/token"
)

// NewTokenCmd creates the token command.
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate an HS256 JWT fixture for the test environment",
		Long: `Token mints a signed JWT for use as an opaque test credential.

The token is a compact HS256 JWT carrying sub, scope, iss, aud, and exp
claims. Defaults match the mcp-guard test environment fixture; the config
file and flags can override any of them. The token is printed to standard
output and nothing is verified or stored.

Examples:
  # Mint a fixture token with the default test claims
  guardkit token

  # Mint a token for a different audience with a 10 minute lifetime
  guardkit token --audience staging-guard --ttl 10m`,
		Args: cobra.NoArgs,
		RunE: runTokenCmd,
	}

	cmd.Flags().String("secret", "", "HMAC signing secret (overrides config)")
	cmd.Flags().String("subject", "", "Value for the sub claim")
	cmd.Flags().String("scope", "", "Value for the scope claim")
	cmd.Flags().String("issuer", "", "Value for the iss claim")
	cmd.Flags().String("audience", "", "Value for the aud claim")
	cmd.Flags().Duration("ttl", 0, "Token lifetime (default 1h)")
	cmd.Flags().StringP("config", "c", "",
		"Path to the configuration file (default: .guardkit in CWD or home)")

	return cmd
}

// runTokenCmd executes the token command.
func runTokenCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildTokenConfig(cmd)
	if err != nil {
		return err
	}

	tok, err := token.Sign(cfg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

// buildTokenConfig assembles the token configuration from defaults, the
// optional config file, and flags.
func buildTokenConfig(cmd *cobra.Command) (token.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return token.Config{}, err
	}
	if found := config.FindConfigFile(configPath); found != "" {
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return token.Config{}, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		file.Apply(cfg)
	} else if configPath != "" {
		return token.Config{}, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	// Flag overrides, applied last so they win over the config file.
	overrides := []struct {
		flag   string
		target *string
	}{
		{"secret", &cfg.Token.Secret},
		{"subject", &cfg.Token.Subject},
		{"scope", &cfg.Token.Scope},
		{"issuer", &cfg.Token.Issuer},
		{"audience", &cfg.Token.Audience},
	}
	for _, o := range overrides {
		value, err := cmd.Flags().GetString(o.flag)
		if err != nil {
			return token.Config{}, err
		}
		if value != "" {
			*o.target = value
		}
	}

	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		return token.Config{}, err
	}
	if ttl != 0 {
		cfg.Token.TTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return token.Config{}, err
	}

	return cfg.Token, nil
}
