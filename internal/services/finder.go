package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"unused-image-finder/internal/folder"
	"unused-image-finder/internal/inspect"
	"unused-image-finder/internal/logger"
	"unused-image-finder/internal/matcher"
	"unused-image-finder/internal/models"
	"unused-image-finder/internal/references"
	"unused-image-finder/internal/report"
)

var (
	// ErrNoFolderSelected is returned when matching runs before a folder was chosen
	ErrNoFolderSelected = errors.New("no images folder selected")
	// ErrNoResult is returned when exporting before any match ran
	ErrNoResult = errors.New("no unused image list to export")
	// ErrPreviewDisabled is returned when no inspector is configured
	ErrPreviewDisabled = errors.New("image preview disabled")
	// ErrFolderChanged is returned when another folder was selected while a match ran
	ErrFolderChanged = errors.New("images folder changed during match")
)

// ImageInspector reads details and thumbnails of image files
type ImageInspector interface {
	Inspect(path string) (inspect.Details, error)
	Thumbnail(path string, maxEdge int) (image.Image, error)
}

// FinderService runs the two user actions, choosing a folder and computing
// the unused list, against a presentation-owned session.
type FinderService struct {
	session   *models.Session
	options   folder.Options
	inspector ImageInspector
	logger    logger.Logger
}

// NewFinderService creates a finder service; inspector may be nil to disable previews
func NewFinderService(session *models.Session, opts folder.Options, inspector ImageInspector, log logger.Logger) *FinderService {
	return &FinderService{
		session:   session,
		options:   opts,
		inspector: inspector,
		logger:    log,
	}
}

// SelectFolder lists dir and makes it the current images folder
func (fs *FinderService) SelectFolder(ctx context.Context, dir string) (folder.Listing, error) {
	if err := ctx.Err(); err != nil {
		return folder.Listing{}, err
	}

	start := time.Now()
	listing, err := folder.List(dir, fs.options)
	if err != nil {
		fs.logger.Error("FinderService", "folder listing failed", err, map[string]interface{}{
			"path": dir,
		})
		return folder.Listing{}, err
	}

	fs.session.SetListing(listing)
	fs.logger.Info("FinderService", "images folder selected", map[string]interface{}{
		"path":           listing.Path,
		"project_folder": listing.ProjectFolder,
		"images":         len(listing.Images),
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	return listing, nil
}

// SetProjectFolder overrides the reference prefix for the current folder
func (fs *FinderService) SetProjectFolder(name string) {
	fs.session.SetProjectFolder(name)
	fs.logger.Debug("FinderService", "project folder prefix changed", map[string]interface{}{
		"project_folder": name,
	})
}

// ProjectFolder returns the prefix the next match will use
func (fs *FinderService) ProjectFolder() string {
	return fs.session.ProjectFolder()
}

// FindUnused splits referenceText into lines and matches them against the current folder
func (fs *FinderService) FindUnused(ctx context.Context, referenceText string) (matcher.Result, error) {
	if err := ctx.Err(); err != nil {
		return matcher.Result{}, err
	}

	generation := fs.session.Generation()
	listing, ok := fs.session.Listing()
	if !ok {
		return matcher.Result{}, ErrNoFolderSelected
	}

	lines := references.SplitLines(referenceText)
	project := fs.session.ProjectFolder()
	result := matcher.Match(listing.Images, lines, project)
	if !fs.session.RecordResult(generation, result) {
		return matcher.Result{}, ErrFolderChanged
	}

	fs.logger.Info("FinderService", "unused images computed", map[string]interface{}{
		"project_folder":  project,
		"reference_lines": len(lines),
		"images":          result.Total,
		"unused":          len(result.Unused),
	})
	return result, nil
}

// ExportResult writes the last computed list in presenter text form
func (fs *FinderService) ExportResult(w io.Writer) error {
	result, ok := fs.session.LastResult()
	if !ok {
		return ErrNoResult
	}
	if _, err := io.WriteString(w, report.Text(result)); err != nil {
		return fmt.Errorf("failed to write unused image list: %w", err)
	}
	return nil
}

// Generation identifies the current folder listing; it changes on every SelectFolder
func (fs *FinderService) Generation() uint64 {
	return fs.session.Generation()
}

// LastResult returns the most recent match result, if any
func (fs *FinderService) LastResult() (matcher.Result, bool) {
	return fs.session.LastResult()
}

// ImagePath joins name onto the current folder path
func (fs *FinderService) ImagePath(name string) (string, error) {
	listing, ok := fs.session.Listing()
	if !ok {
		return "", ErrNoFolderSelected
	}
	return filepath.Join(listing.Path, name), nil
}

// Details inspects one image of the current folder
func (fs *FinderService) Details(name string) (inspect.Details, error) {
	if fs.inspector == nil {
		return inspect.Details{}, ErrPreviewDisabled
	}
	path, err := fs.ImagePath(name)
	if err != nil {
		return inspect.Details{}, err
	}
	return fs.inspector.Inspect(path)
}

// Thumbnail decodes a scaled preview of one image of the current folder
func (fs *FinderService) Thumbnail(ctx context.Context, name string, maxEdge int) (image.Image, error) {
	if fs.inspector == nil {
		return nil, ErrPreviewDisabled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := fs.ImagePath(name)
	if err != nil {
		return nil, err
	}
	return fs.inspector.Thumbnail(path, maxEdge)
}

// Stats exposes session counters for periodic logging
func (fs *FinderService) Stats() models.SessionStats {
	return fs.session.Stats()
}
