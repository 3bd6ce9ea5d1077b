// Package layout splits text into lines and measures paragraphs.
//
// Lines are left aligned and stacked top to bottom. Nothing here draws; the
// same measurements are used to plan a render and to check whether text fits
// a box beforehand.
package layout

import "strings"

var newlineReplacer = strings.NewReplacer(
	`\r\n`, "\n",
	`\n`, "\n",
	"\r\n", "\n",
	"\r", "\n",
)

// Normalize turns literal backslash-n sequences and carriage-return line
// endings into plain newlines, so both forms break lines identically.
func Normalize(text string) string {
	return newlineReplacer.Replace(text)
}

// SplitLines splits text on newlines. Text without newlines, including the
// empty string, is a single line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}
