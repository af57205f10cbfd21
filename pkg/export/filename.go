package export

import (
	"fmt"
	"strings"
	"time"
)

// Filename builds the download name for an export:
// vessel_data_<scope>_<yyyy-mm-dd>_<access>.<ext> where scope is
// all_vessels, one sanitized vessel name, or "<N>_vessels", and access
// is "full" when financial data is included, "operational" otherwise.
func Filename(vesselNames []string, allVessels bool, date time.Time, includeFinancial bool, ext string) string {
	var scope string
	switch {
	case allVessels:
		scope = "all_vessels"
	case len(vesselNames) == 1:
		scope = SanitizeFilename(vesselNames[0])
	default:
		scope = fmt.Sprintf("%d_vessels", len(vesselNames))
	}

	access := "operational"
	if includeFinancial {
		access = "full"
	}

	return fmt.Sprintf("vessel_data_%s_%s_%s.%s", scope, date.Format("2006-01-02"), access, ext)
}

// SanitizeFilename replaces characters that are invalid (or awkward)
// in filenames with underscores.
func SanitizeFilename(name string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := make([]rune, 0, len(name))
	for _, char := range strings.ToLower(name) {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}

	return string(result)
}
