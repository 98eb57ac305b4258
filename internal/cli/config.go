package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Davincible/rijndael/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// configSetters maps the names accepted by 'config set' to the field they
// change. Values are checked by Config.Validate when the file is saved.
var configSetters = map[string]func(cfg *config.Config, value string) error{
	"output": func(cfg *config.Config, value string) error {
		cfg.Defaults.Output = strings.ToLower(value)
		return nil
	},
	"key-policy": func(cfg *config.Config, value string) error {
		cfg.Defaults.KeyPolicy = strings.ToLower(value)
		return nil
	},
	"key-size": func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("key-size must be a number of bytes: %w", err)
		}
		cfg.Defaults.KeySize = n
		return nil
	},
	"use-color": func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("use-color must be true or false: %w", err)
		}
		cfg.UI.UseColor = b
		return nil
	},
	"keyfile": func(cfg *config.Config, value string) error {
		cfg.Storage.KeyfilePath = value
		return nil
	},
	"kdf-iterations": func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("kdf-iterations must be a number: %w", err)
		}
		cfg.Storage.KDFIterations = n
		return nil
	},
}

func configKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the stored defaults",
	}

	cmd.AddCommand(newConfigShowCommand(), newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg := cm.GetConfig()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}

			out := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintln(out, cm.Path())
			fmt.Fprintf(out, "  output          %s\n", cfg.Defaults.Output)
			fmt.Fprintf(out, "  key-policy      %s\n", cfg.Defaults.KeyPolicy)
			fmt.Fprintf(out, "  key-size        %d\n", cfg.Defaults.KeySize)
			fmt.Fprintf(out, "  use-color       %t\n", cfg.UI.UseColor)
			fmt.Fprintf(out, "  keyfile         %s\n", cm.KeyfilePath())
			fmt.Fprintf(out, "  kdf-iterations  %d\n", cfg.Storage.KDFIterations)
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one stored default",
		Long: fmt.Sprintf(`Change one stored default and write the configuration file.

Keys: %s`, strings.Join(configKeys(), ", ")),
		Example: `  rijndael config set output base64
  rijndael config set key-policy pad`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := configSetters[args[0]]
			if !ok {
				return fmt.Errorf("unknown config key %q (valid: %s)", args[0], strings.Join(configKeys(), ", "))
			}

			cm, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			updated := *cm.GetConfig()
			if err := set(&updated, args[1]); err != nil {
				return err
			}
			if err := updated.Validate(); err != nil {
				return err
			}

			cm.SetConfig(&updated)
			if err := cm.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], cm.Path())
			return nil
		},
	}
}
