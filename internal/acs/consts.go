package acs

const (
	cAppendixPattern  = "ACS_%s_SF_5YR_Appendices.xlsx"
	cTemplatesPattern = "%s_5yr_Summary_FileTemplates.zip"
	cBaseURLPattern   = "https://www2.census.gov/programs-surveys/acs/summary_file/%s"

	cTractsSuffix  = "_Tracts_Block_Groups_Only.zip"
	cAllGeoSuffix  = "_All_Geographies_Not_Tracts_Block_Groups.zip"
	cAllTablesFile = "ACS All Tables.csv"

	cGeoTemplateKey = "geo"

	// Column labels the summary-file templates use for the join keys.
	cGeoIDColumn   = "Geographic Identifier"
	cLogRecColumn  = "Logical Record Number"
	cSumLevColumn  = "Summary Level"
	cSeqLogRecCol  = "LOGRECNO"
	cReservedLabel = "Reserved Future Use"

	// Estimate file names embed the 4-digit sequence id at a fixed offset,
	// e.g. e20195al0001000.txt -> bytes 8..12 are "0001".
	cSeqIDOffset = 8
	cSeqIDWidth  = 4

	cAllStates = "all"
)

// Tokens the extract files use for "no value". Both are normalized to the
// empty string on read.
var naValues = []string{".", "-1"}

// StateCodes is the canonical set of lowercase state abbreviations the
// by-state distribution covers, including DC, the national file and PR.
var StateCodes = []string{
	"al", "ak", "az", "ar", "ca", "co", "ct", "dc", "de", "fl", "ga",
	"hi", "id", "il", "in", "ia", "ks", "ky", "la", "me", "md", "ma",
	"mi", "mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj", "nm", "ny",
	"nc", "nd", "oh", "ok", "or", "pa", "ri", "sc", "sd", "tn", "tx",
	"ut", "vt", "va", "wa", "wv", "wi", "wy", "us", "pr",
}

// SummaryLevels maps geography level names to their summary-level codes.
var SummaryLevels = map[string]string{
	"region":                  "020",
	"division":                "030",
	"state":                   "040",
	"county":                  "050",
	"county_subdivision":      "060",
	"subminor_civil_division": "067",
	"census_tract":            "140",
	"block_group":             "150",
	"place":                   "160",
}

// Levels whose data lives in the tracts/block-groups archive partition
// instead of the all-geographies one. Static lookup, not a computed rule.
var tractLevelCodes = map[string]bool{
	"140": true,
	"150": true,
}
