// Package references turns a pasted graphics list into individual lines.
package references

import (
	"fmt"
	"io"
	"strings"
)

// SplitLines splits text on "\n", "\r\n" or a lone "\r". Line content is kept
// as is. A final terminator does not start an extra empty line.
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for text != "" {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}

// Read reads r to the end and splits it like SplitLines
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference list: %w", err)
	}
	return SplitLines(string(data)), nil
}
