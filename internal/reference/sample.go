// =============================================================================
// HSN/SAC Validator - Sample Reference Data
// =============================================================================
//
// A few rows per code type, loaded with --sample (or use_sample: true) for
// demonstrations and tests when no master file is at hand.
//
// =============================================================================

package reference

import "github.com/ginjaninja78/hsn-sac-validator/internal/types"

// SampleSource labels tables built from the built-in sample data.
const SampleSource = "sample"

var sampleEntries = map[types.CodeType][]Entry{
	types.HSN: {
		{Code: "01", Description: "Live Animals"},
		{Code: "0101", Description: "Live Horses and Similar Creatures"},
		{Code: "01011010", Description: "Pure-bred Breeding Horses"},
	},
	types.SAC: {
		{Code: "99", Description: "All Services"},
		{Code: "9954", Description: "Construction Services"},
		{Code: "995411", Description: "Affordable Residential Construction"},
	},
}

// Sample returns the built-in demonstration table for codeType.
// Unknown code types get an empty table.
func Sample(codeType types.CodeType) *Table {
	return NewTable(codeType, SampleSource, sampleEntries[codeType])
}
