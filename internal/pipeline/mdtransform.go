package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compact drops carriage-return/tab pairs left by editors that mix
// line endings with tab indentation.
func compact(content string) string {
	return strings.ReplaceAll(content, "\r\t", "")
}
