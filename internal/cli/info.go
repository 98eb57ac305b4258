package cli

import (
	"fmt"
	"runtime"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"
)

type variantInfo struct {
	Name         string `json:"name"`
	KeyBytes     int    `json:"key_bytes"`
	Rounds       int    `json:"rounds"`
	ScheduleSize int    `json:"schedule_bytes"`
}

type infoResult struct {
	Version     string        `json:"version"`
	GoVersion   string        `json:"go_version"`
	Platform    string        `json:"platform"`
	BlockSize   int           `json:"block_size"`
	Polynomial  string        `json:"polynomial"`
	Generator   int           `json:"generator"`
	Variants    []variantInfo `json:"variants"`
	CPUHasAES   bool          `json:"cpu_has_aes"`
	ConfigPath  string        `json:"config_path"`
	KeyfilePath string        `json:"keyfile_path"`
}

func NewInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show supported variants and platform details",
		Long: `Show the AES variants this build supports, the field parameters, and
whether the CPU offers AES instructions. This implementation is portable Go
and never uses them; the flag is reported for comparison only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			result := infoResult{
				Version:     cmd.Root().Version,
				GoVersion:   runtime.Version(),
				Platform:    runtime.GOOS + "/" + runtime.GOARCH,
				BlockSize:   rijndael.BlockSize,
				Polynomial:  fmt.Sprintf("0x%03x", gf.Poly),
				Generator:   gf.Generator,
				CPUHasAES:   cpuHasAES(),
				ConfigPath:  s.ConfigPath,
				KeyfilePath: s.KeyfilePath,
			}

			for _, keyLen := range []int{rijndael.Key128, rijndael.Key192, rijndael.Key256} {
				size, err := rijndael.ExpandedKeySize(keyLen)
				if err != nil {
					return err
				}
				rounds, err := rijndael.Rounds(make([]byte, size))
				if err != nil {
					return err
				}
				result.Variants = append(result.Variants, variantInfo{
					Name:         fmt.Sprintf("AES-%d", keyLen*8),
					KeyBytes:     keyLen,
					Rounds:       rounds,
					ScheduleSize: size,
				})
			}

			if s.JSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			out := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintln(out, "rijndael", result.Version)
			fmt.Fprintf(out, "  go:          %s %s\n", result.GoVersion, result.Platform)
			fmt.Fprintf(out, "  block size:  %d bytes\n", result.BlockSize)
			fmt.Fprintf(out, "  field:       GF(2^8) mod %s, generator %d\n", result.Polynomial, result.Generator)
			fmt.Fprintf(out, "  cpu aes:     %t (not used)\n", result.CPUHasAES)
			fmt.Fprintf(out, "  config:      %s\n", result.ConfigPath)
			fmt.Fprintf(out, "  keyfile:     %s\n", result.KeyfilePath)
			fmt.Fprintln(out)
			cyan.Fprintln(out, "Variants")
			for _, v := range result.Variants {
				fmt.Fprintf(out, "  %-8s key %2d bytes, %2d rounds, schedule %3d bytes\n",
					v.Name, v.KeyBytes, v.Rounds, v.ScheduleSize)
			}
			return nil
		},
	}

	return cmd
}

func cpuHasAES() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	case "s390x":
		return cpu.S390X.HasAES
	default:
		return false
	}
}
