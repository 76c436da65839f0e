// Package report renders match results for people and for scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"unused-image-finder/internal/folder"
	"unused-image-finder/internal/matcher"
)

// NoUnusedImages is shown in place of an empty result
const NoUnusedImages = "<No unused images found.>"

// Text lists one unused image per line, or NoUnusedImages when there are none
func Text(result matcher.Result) string {
	if result.Empty() {
		return NoUnusedImages
	}

	var b strings.Builder
	for _, name := range result.Unused {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary returns a one-line count such as "2 of 5 images unused"
func Summary(result matcher.Result) string {
	noun := "images"
	if result.Total == 1 {
		noun = "image"
	}
	return fmt.Sprintf("%d of %d %s unused", len(result.Unused), result.Total, noun)
}

// Document is the JSON shape written by WriteJSON
type Document struct {
	Folder        string   `json:"folder"`
	ProjectFolder string   `json:"project_folder"`
	Total         int      `json:"total"`
	Referenced    int      `json:"referenced"`
	Unused        []string `json:"unused"`
}

// WriteJSON writes the listing and result as an indented JSON document
func WriteJSON(w io.Writer, listing folder.Listing, result matcher.Result) error {
	doc := Document{
		Folder:        listing.Path,
		ProjectFolder: listing.ProjectFolder,
		Total:         result.Total,
		Referenced:    result.Referenced,
		Unused:        result.Unused,
	}
	if doc.Unused == nil {
		doc.Unused = []string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
