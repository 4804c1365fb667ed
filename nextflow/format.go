// Display helpers for trace fields.

package nextflow

import (
	"regexp"
	"strings"
)

// MT: Constant after initialization
var (
	memoryRe     = regexp.MustCompile(`^([\d.]+)\s*([A-Za-z]+)`)
	annotationRe = regexp.MustCompile(`\([^)]*\)`)
)

// Normalize a raw memory string for display.  An empty or blank value becomes "N/A".  A leading
// numeric value with a unit token becomes "<value> <unit>" with single-space separation.
// Anything else is passed through unchanged, this never fails.

func FormatMemory(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "N/A"
	}
	if m := memoryRe.FindStringSubmatch(raw); m != nil {
		return m[1] + " " + m[2]
	}
	return raw
}

// Strip parenthesized annotations from a task name.  Nextflow appends the sample or attempt in
// parentheses, eg "FASTQC (sampleA_T1)".

func CleanName(name string) string {
	return strings.TrimSpace(annotationRe.ReplaceAllString(name, ""))
}
