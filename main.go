// =============================================================================
// HSN/SAC Validator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the HSN/SAC code validator CLI. It hands
// control to the Cobra command tree in the cmd package.
//
// USAGE:
//   hsnval validate      - Validate codes given on the command line
//   hsnval check         - Validate code columns in CSV/XLSX files
//   hsnval tables        - Show the loaded reference tables
//   hsnval version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Validation, reference tables, parsers, reports, config
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/hsn-sac-validator/cmd"
)

func main() {
	cmd.Execute()
}
