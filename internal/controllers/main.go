package controllers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"unused-image-finder/internal/inspect"
	"unused-image-finder/internal/logger"
	"unused-image-finder/internal/report"
	"unused-image-finder/internal/services"
	"unused-image-finder/internal/views"

	"fyne.io/fyne/v2"
)

// MainController connects the main view to the finder service
type MainController struct {
	finder      *services.FinderService
	mainView    *views.MainView
	logger      logger.Logger
	thumbEdge   int
	previewOn   bool
	actionLimit time.Duration

	// cancelled by the shutdown manager
	ctx context.Context

	mu            sync.Mutex
	lastFolder    string
	selection     string
	previewCancel context.CancelFunc
}

// NewMainController creates a new main controller; background work stops when ctx is done
func NewMainController(ctx context.Context, finder *services.FinderService, log logger.Logger, previewOn bool, thumbEdge int) *MainController {
	return &MainController{
		finder:      finder,
		logger:      log,
		thumbEdge:   thumbEdge,
		previewOn:   previewOn,
		actionLimit: 30 * time.Second,
		ctx:         ctx,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetBrowseHandler(mc.BrowseFolder)
	mc.mainView.SetPrefixChangeHandler(mc.ChangeProjectFolder)
	mc.mainView.SetFindHandler(mc.ShowUnusedImages)
	mc.mainView.SetPasteHandler(mc.PasteReferences)
	mc.mainView.SetCopyHandler(mc.CopyResult)
	mc.mainView.SetExportHandler(mc.ExportResult)
	mc.mainView.SetSelectImageHandler(mc.SelectImage)
}

// BrowseFolder opens the folder chooser and lists the chosen folder
func (mc *MainController) BrowseFolder() {
	mc.mu.Lock()
	start := mc.lastFolder
	mc.mu.Unlock()

	mc.mainView.ShowFolderDialog(start, func(path string, err error) {
		if err != nil {
			mc.handleError("Folder selection failed", err)
			return
		}
		mc.OpenFolder(path)
	})
}

// OpenFolder lists path and makes it the current images folder
func (mc *MainController) OpenFolder(path string) {
	ctx, cancel := context.WithTimeout(mc.ctx, mc.actionLimit)
	defer cancel()

	listing, err := mc.finder.SelectFolder(ctx, path)
	if err != nil {
		mc.handleError("Cannot open images folder", err)
		return
	}

	mc.mu.Lock()
	mc.lastFolder = filepath.Dir(listing.Path)
	mc.selection = ""
	mc.mu.Unlock()

	mc.mainView.SetFolder(mc.finder.Generation(), listing.Path, listing.ProjectFolder, len(listing.Images))
	mc.mainView.UpdateStatus(fmt.Sprintf("Loaded %d files from %s", len(listing.Images), filepath.Base(listing.Path)))
}

// ChangeProjectFolder applies an edited reference prefix
func (mc *MainController) ChangeProjectFolder(prefix string) {
	mc.finder.SetProjectFolder(prefix)
	mc.mainView.UpdatePrefixInfo(mc.finder.Stats().Images, mc.finder.ProjectFolder())
}

// ShowUnusedImages matches the pasted list against the current folder.
// The text is read here on the UI goroutine; matching runs in the background
// and its result is dropped if another folder is opened before it lands.
func (mc *MainController) ShowUnusedImages() {
	text := mc.mainView.ReferenceText()
	generation := mc.finder.Generation()
	mc.mainView.SetBusy(true)
	mc.mainView.UpdateStatus("Finding unused images...")

	go func() {
		defer mc.mainView.SetBusy(false)

		ctx, cancel := context.WithTimeout(mc.ctx, mc.actionLimit)
		defer cancel()

		result, err := mc.finder.FindUnused(ctx, text)
		if errors.Is(err, services.ErrFolderChanged) || (err == nil && generation != mc.finder.Generation()) {
			mc.logger.Debug("MainController", "dropping result of replaced folder", nil)
			return
		}
		if err != nil {
			mc.handleError("Cannot compute unused images", err)
			return
		}

		summary := report.Summary(result)
		mc.mainView.ShowResult(generation, result, summary)
		mc.mainView.UpdateStatus("Done")
	}()
}

// PasteReferences appends the clipboard text to the reference list
func (mc *MainController) PasteReferences() {
	text := fyne.CurrentApp().Clipboard().Content()
	if text == "" {
		mc.mainView.ShowInfo("Paste", "Clipboard is empty")
		return
	}
	mc.mainView.AppendReferenceText(text)
	mc.mainView.UpdateStatus("Pasted reference list from clipboard")
}

// CopyResult puts the last unused list on the clipboard
func (mc *MainController) CopyResult() {
	result, ok := mc.finder.LastResult()
	if !ok {
		mc.mainView.ShowInfo("Nothing to copy", "Run Show Unused Images first.")
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(report.Text(result))
	mc.mainView.UpdateStatus(fmt.Sprintf("Copied %d names to the clipboard", len(result.Unused)))
}

// ExportResult saves the last unused list to a text file
func (mc *MainController) ExportResult() {
	if _, ok := mc.finder.LastResult(); !ok {
		mc.mainView.ShowInfo("Nothing to export", "Run Show Unused Images first.")
		return
	}

	mc.mainView.ShowSaveDialog("unused-images.txt", func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.handleError("Export failed", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := mc.finder.ExportResult(writer); err != nil {
			mc.handleError("Export failed", err)
			return
		}
		mc.logger.Info("MainController", "unused image list exported", map[string]interface{}{
			"uri": writer.URI().String(),
		})
		mc.mainView.UpdateStatus("Exported to " + writer.URI().Name())
	})
}

// SelectImage previews an unused image. Decoding runs in the background and
// results for a selection that has since changed are dropped.
func (mc *MainController) SelectImage(name string) {
	if !mc.previewOn {
		return
	}

	mc.mu.Lock()
	if mc.previewCancel != nil {
		mc.previewCancel()
	}
	ctx, cancel := context.WithTimeout(mc.ctx, mc.actionLimit)
	mc.previewCancel = cancel
	mc.selection = name
	mc.mu.Unlock()

	go func() {
		defer cancel()

		details, err := mc.finder.Details(name)
		if err != nil {
			if mc.isCurrent(ctx, name) {
				mc.handleError("Cannot read image", err)
			}
			return
		}

		img, err := mc.finder.Thumbnail(ctx, name, mc.thumbEdge)
		if !mc.isCurrent(ctx, name) {
			return
		}
		switch {
		case errors.Is(err, inspect.ErrNotAnImage):
			mc.mainView.ShowPreviewDetails(details, "No preview for this format")
		case err != nil:
			mc.logger.Warning("MainController", "thumbnail failed", map[string]interface{}{
				"image": name,
				"error": err.Error(),
			})
			mc.mainView.ShowPreviewDetails(details, "Preview unavailable")
		default:
			mc.mainView.ShowPreview(img, details)
		}
	}()
}

func (mc *MainController) isCurrent(ctx context.Context, name string) bool {
	if ctx.Err() != nil {
		return false
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.selection == name
}

func (mc *MainController) handleError(title string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	mc.logger.Error("MainController", title, err, nil)
	mc.mainView.ShowError(title, err)
}

// Shutdown cancels a pending preview; the rest of the background work
// follows the context passed to NewMainController.
func (mc *MainController) Shutdown() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.previewCancel != nil {
		mc.previewCancel()
	}
}
