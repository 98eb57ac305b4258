package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Davincible/rijndael/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings is the effective configuration for one command run. Precedence,
// highest first: flags, RIJNDAEL_* environment, config file, built-in
// defaults.
type settings struct {
	Output        string
	KeyPolicy     string
	KeySize       int
	JSON          bool
	KeyfilePath   string
	KDFIterations int
	ConfigPath    string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	cm, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.GetConfig()

	v := viper.New()
	v.SetEnvPrefix("RIJNDAEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("output", cfg.Defaults.Output)
	v.SetDefault("key-policy", cfg.Defaults.KeyPolicy)
	v.SetDefault("key-size", cfg.Defaults.KeySize)
	v.SetDefault("keyfile", cm.KeyfilePath())
	v.SetDefault("kdf-iterations", cfg.Storage.KDFIterations)

	for _, name := range []string{"output", "key-policy", "json", "keyfile", "key-size"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	s := &settings{
		Output:        strings.ToLower(v.GetString("output")),
		KeyPolicy:     strings.ToLower(v.GetString("key-policy")),
		KeySize:       v.GetInt("key-size"),
		JSON:          v.GetBool("json"),
		KeyfilePath:   v.GetString("keyfile"),
		KDFIterations: v.GetInt("kdf-iterations"),
		ConfigPath:    cm.Path(),
	}

	if pad, _ := cmd.Flags().GetBool("pad-key"); pad {
		s.KeyPolicy = config.KeyPolicyPad
	}

	if err := config.ValidateOutput(s.Output); err != nil {
		return nil, err
	}
	if err := config.ValidateKeyPolicy(s.KeyPolicy); err != nil {
		return nil, err
	}

	if !cfg.UI.UseColor {
		color.NoColor = true
	}

	slog.Debug("Settings resolved",
		"config", cm.Path(),
		"output", s.Output,
		"key_policy", s.KeyPolicy,
		"keyfile", s.KeyfilePath)

	return s, nil
}
