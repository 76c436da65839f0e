// Package folder lists the images of a single flat image folder and derives
// the project folder name used as the reference prefix.
package folder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDirectoryUnavailable is returned when the chosen path cannot be listed
var ErrDirectoryUnavailable = errors.New("directory unavailable")

// PrefixSource selects which directory name becomes the project folder
type PrefixSource string

const (
	// PrefixParent uses the directory that contains the image folder
	PrefixParent PrefixSource = "parent"
	// PrefixFolder uses the image folder's own name
	PrefixFolder PrefixSource = "folder"
)

// ParsePrefixSource validates a configured prefix source
func ParsePrefixSource(s string) (PrefixSource, error) {
	switch PrefixSource(strings.ToLower(strings.TrimSpace(s))) {
	case PrefixParent, "":
		return PrefixParent, nil
	case PrefixFolder:
		return PrefixFolder, nil
	default:
		return "", fmt.Errorf("unknown prefix source %q (want %q or %q)", s, PrefixParent, PrefixFolder)
	}
}

// Options controls listing behaviour
type Options struct {
	PrefixSource PrefixSource
	SkipHidden   bool
}

// Listing is the content of one image folder
type Listing struct {
	Path          string
	ProjectFolder string
	Images        []string
}

// List returns the regular files directly inside dir, sorted case-insensitively.
func List(dir string, opts Options) (Listing, error) {
	if dir == "" {
		return Listing{}, fmt.Errorf("%w: no folder given", ErrDirectoryUnavailable)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %s: %v", ErrDirectoryUnavailable, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	if !info.IsDir() {
		return Listing{}, fmt.Errorf("%w: %s is not a directory", ErrDirectoryUnavailable, abs)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	images := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			// symlinks count when they resolve to a regular file
			if e.Type()&os.ModeSymlink == 0 {
				continue
			}
			fi, err := os.Stat(filepath.Join(abs, e.Name()))
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		if opts.SkipHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		images = append(images, e.Name())
	}
	SortImages(images)

	return Listing{
		Path:          abs,
		ProjectFolder: ProjectFolderName(abs, opts.PrefixSource),
		Images:        images,
	}, nil
}

// SortImages sorts names case-insensitively; names equal under folding keep their order.
func SortImages(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}

// ProjectFolderName derives the reference prefix for an image folder path
func ProjectFolderName(imageDir string, source PrefixSource) string {
	clean := filepath.Clean(imageDir)
	if source == PrefixFolder {
		return baseName(clean)
	}
	return baseName(filepath.Dir(clean))
}

func baseName(p string) string {
	name := filepath.Base(p)
	if name == string(filepath.Separator) || name == "." {
		return ""
	}
	return name
}
