// Package matcher decides which images in a folder are not named by any
// reference line of a FrameMaker graphics list.
package matcher

import (
	"strings"
	"unicode/utf8"
)

// Result holds the outcome of a single match run
type Result struct {
	Unused     []string
	Total      int
	Referenced int
}

// Empty reports whether every image was referenced
func (r Result) Empty() bool {
	return len(r.Unused) == 0
}

// ReferencePrefix returns the text a reference line must start with to name image
func ReferencePrefix(projectFolderName, image string) string {
	return projectFolderName + "/" + image + " "
}

// FindUnusedImages returns the images of allImages that no line of usedImages
// references, in the order of allImages. The result is never nil.
func FindUnusedImages(allImages, usedImages []string, projectFolderName string) []string {
	unused := make([]string, 0, len(allImages))
	for _, image := range allImages {
		if !isReferenced(ReferencePrefix(projectFolderName, image), usedImages) {
			unused = append(unused, image)
		}
	}
	return unused
}

// Match runs FindUnusedImages and reports counts alongside the unused names
func Match(allImages, usedImages []string, projectFolderName string) Result {
	unused := FindUnusedImages(allImages, usedImages, projectFolderName)
	return Result{
		Unused:     unused,
		Total:      len(allImages),
		Referenced: len(allImages) - len(unused),
	}
}

func isReferenced(prefix string, lines []string) bool {
	for _, line := range lines {
		if hasPrefixFold(line, prefix) {
			return true
		}
	}
	return false
}

// hasPrefixFold is strings.HasPrefix under Unicode simple case folding.
// Runes are compared one at a time since folded forms may differ in byte length.
// Bytes that are not valid UTF-8 only match themselves.
func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if invalid(pr, pn) || invalid(sr, sn) {
			if prefix[:pn] != s[:sn] {
				return false
			}
		} else if pr != sr && !strings.EqualFold(prefix[:pn], s[:sn]) {
			return false
		}
		prefix = prefix[pn:]
		s = s[sn:]
	}
	return true
}

func invalid(r rune, width int) bool {
	return r == utf8.RuneError && width == 1
}
