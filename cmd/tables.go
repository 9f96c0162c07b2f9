// =============================================================================
// HSN/SAC Validator - Tables Command
// =============================================================================
//
// This file defines the 'tables' command, which shows what reference data
// a validate or check run would use with the same flags and config.
//
// COMMAND USAGE:
//   hsnval tables [--sample] [--hsn-file <file>] [--sac-file <file>]
//
// OUTPUT:
//   HSN: 3 row(s) from sample
//     01        Live Animals
//     0101      Live Horses and Similar Creatures
//     01011010  Pure-bred Breeding Horses
//
//   SAC: not loaded
//
//   At most preview_rows entries are listed per table.
//
// =============================================================================

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// TABLES COMMAND DEFINITION
// =============================================================================

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show the loaded reference tables",
	Long: `Load the configured reference data and print, for each code type, the
source, the row count and the first rows of the table (preview_rows in the
config).`,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

// =============================================================================
// MAIN TABLES FUNCTION
// =============================================================================

func runTables(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := currentConfig()
	v := newValidator(cmd, cfg)

	for _, ct := range types.CodeTypes {
		table := v.Table(ct)
		if table == nil {
			fmt.Fprintf(out, "%s: not loaded\n\n", ct)
			continue
		}

		fmt.Fprintf(out, "%s: %d row(s) from %s\n", ct, table.Len(), table.Source())

		entries := table.Entries()
		if len(entries) > cfg.PreviewRows {
			entries = entries[:cfg.PreviewRows]
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, e := range entries {
			fmt.Fprintf(tw, "  %s\t%s\n", e.Code, e.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if table.Len() > len(entries) {
			fmt.Fprintf(out, "  ... %d more\n", table.Len()-len(entries))
		}
		fmt.Fprintln(out)
	}

	return nil
}
