package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type tableResult struct {
	Name   string `json:"name"`
	Values []int  `json:"values"`
}

// tableBuilders produce each printable table. log has no entry for 0, which
// is shown as "--".
var tableBuilders = map[string]func() []int{
	"sbox": func() []int {
		t := rijndael.SBox()
		return bytesToInts(t[:])
	},
	"inv-sbox": func() []int {
		t := rijndael.InvSBox()
		return bytesToInts(t[:])
	},
	"log": func() []int {
		values := make([]int, 256)
		values[0] = -1
		for a := 1; a < 256; a++ {
			values[a] = int(gf.Log(byte(a)))
		}
		return values
	},
	"antilog": func() []int {
		values := make([]int, gf.Order)
		for i := range values {
			values[i] = int(gf.Antilog(i))
		}
		return values
	},
	"rcon": func() []int {
		t := gf.RconTable()
		return bytesToInts(t[:])
	},
}

func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables NAME",
		Short: "Print a lookup table",
		Long: `Print one of the tables the cipher is built on as a 16-column hex grid.
Row and column headers give the high and low nibble of the index.

Tables: ` + strings.Join(tableNames(), ", "),
		Example: `  # The forward S-box
  rijndael tables sbox

  # Round constants as JSON
  rijndael tables rcon --json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: tableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			name := strings.ToLower(args[0])
			build, ok := tableBuilders[name]
			if !ok {
				return fmt.Errorf("unknown table %q, choose one of: %s", args[0], strings.Join(tableNames(), ", "))
			}
			values := build()

			if s.JSON {
				return writeJSON(cmd.OutOrStdout(), tableResult{Name: name, Values: values})
			}

			printGrid(cmd.OutOrStdout(), name, values)
			return nil
		},
	}

	return cmd
}

func printGrid(w io.Writer, name string, values []int) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Fprintf(w, "%s (%d entries)\n\n", name, len(values))
	header := make([]string, 16)
	for c := range header {
		header[c] = fmt.Sprintf(" %x", c)
	}
	cyan.Fprintf(w, "    %s\n", strings.Join(header, " "))

	for row := 0; row*16 < len(values); row++ {
		cells := make([]string, 0, 16)
		for col := 0; col < 16 && row*16+col < len(values); col++ {
			v := values[row*16+col]
			if v < 0 {
				cells = append(cells, "--")
				continue
			}
			cells = append(cells, fmt.Sprintf("%02x", v))
		}
		cyan.Fprintf(w, "%x0 |", row)
		fmt.Fprintf(w, " %s\n", strings.Join(cells, " "))
	}
}

func tableNames() []string {
	names := make([]string, 0, len(tableBuilders))
	for name := range tableBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
