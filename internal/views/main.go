package views

import (
	"fmt"
	"image"

	"unused-image-finder/internal/inspect"
	"unused-image-finder/internal/matcher"
	"unused-image-finder/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainView is the single window of the application
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	folderPanel   *components.FolderPanel
	refPanel      *components.ReferencePanel
	resultsPanel  *components.ResultsPanel
	previewPanel  *components.PreviewPanel
	statusBar     *components.StatusBar
	showPreview   bool

	// listing generation on screen; touched only on the UI goroutine
	generation uint64
}

// NewMainView creates the main view; the preview pane is only built when showPreview is set
func NewMainView(window fyne.Window, showPreview bool, previewEdge int) *MainView {
	view := &MainView{
		window:      window,
		showPreview: showPreview,
	}

	view.initializeComponents(previewEdge)
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents(previewEdge int) {
	mv.folderPanel = components.NewFolderPanel()
	mv.refPanel = components.NewReferencePanel()
	mv.resultsPanel = components.NewResultsPanel()
	mv.statusBar = components.NewStatusBar()
	if mv.showPreview {
		mv.previewPanel = components.NewPreviewPanel(previewEdge)
	}
}

func (mv *MainView) buildLayout() {
	var results fyne.CanvasObject = mv.resultsPanel.GetContainer()
	if mv.previewPanel != nil {
		split := container.NewHSplit(mv.resultsPanel.GetContainer(), mv.previewPanel.GetContainer())
		split.SetOffset(0.55)
		results = split
	}

	content := container.NewVSplit(mv.refPanel.GetContainer(), results)
	content.SetOffset(0.4)

	mv.mainContainer = container.NewBorder(
		mv.folderPanel.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		content,
	)

	mv.window.SetContent(mv.mainContainer)
}

// Event handler setters - called by controller

// SetBrowseHandler sets the handler for the Browse button
func (mv *MainView) SetBrowseHandler(handler func()) {
	mv.folderPanel.SetBrowseHandler(handler)
}

// SetPrefixChangeHandler sets the handler for edits of the reference prefix
func (mv *MainView) SetPrefixChangeHandler(handler func(string)) {
	mv.folderPanel.SetPrefixChangeHandler(handler)
}

// SetFindHandler sets the handler for the Show Unused Images button
func (mv *MainView) SetFindHandler(handler func()) {
	mv.refPanel.SetFindHandler(handler)
}

// SetPasteHandler sets the handler for the Paste button
func (mv *MainView) SetPasteHandler(handler func()) {
	mv.refPanel.SetPasteHandler(handler)
}

// SetCopyHandler sets the handler for copying the unused list
func (mv *MainView) SetCopyHandler(handler func()) {
	mv.resultsPanel.SetCopyHandler(handler)
}

// SetExportHandler sets the handler for exporting the unused list
func (mv *MainView) SetExportHandler(handler func()) {
	mv.resultsPanel.SetExportHandler(handler)
}

// SetSelectImageHandler sets the handler for selecting an unused image
func (mv *MainView) SetSelectImageHandler(handler func(string)) {
	mv.resultsPanel.SetSelectHandler(handler)
}

// UI update methods - called by controller

// SetFolder shows the selected folder and enables matching. generation
// identifies the listing so results computed for an older one can be dropped.
func (mv *MainView) SetFolder(generation uint64, path, prefix string, images int) {
	fyne.Do(func() {
		mv.generation = generation
		mv.folderPanel.SetFolder(path, prefix)
		mv.statusBar.Reset()
		mv.statusBar.SetFolderInfo(images, prefix)
		mv.refPanel.SetFindEnabled(true)
		mv.resultsPanel.Clear()
		mv.ClearPreview()
	})
}

// UpdatePrefixInfo refreshes the status bar after a prefix edit
func (mv *MainView) UpdatePrefixInfo(images int, prefix string) {
	fyne.Do(func() {
		mv.statusBar.SetFolderInfo(images, prefix)
	})
}

// ReferenceText returns the pasted reference list. Call from the UI goroutine.
func (mv *MainView) ReferenceText() string {
	return mv.refPanel.Text()
}

// AppendReferenceText adds pasted text to the reference list, replacing the empty entry
func (mv *MainView) AppendReferenceText(text string) {
	fyne.Do(func() {
		current := mv.refPanel.Text()
		if current != "" && current[len(current)-1] != '\n' {
			current += "\n"
		}
		mv.refPanel.SetText(current + text)
	})
}

// SetBusy toggles the match action while a run is in flight
func (mv *MainView) SetBusy(busy bool) {
	fyne.Do(func() {
		mv.refPanel.SetBusy(busy)
	})
}

// ShowResult renders the outcome of a match run unless the folder it was
// computed for has been replaced in the meantime
func (mv *MainView) ShowResult(generation uint64, result matcher.Result, summary string) {
	fyne.Do(func() {
		if generation != mv.generation {
			return
		}
		mv.ClearPreview()
		mv.resultsPanel.ShowResult(result)
		mv.statusBar.SetResultInfo(summary)
	})
}

// ShowPreview displays a thumbnail of the selected image
func (mv *MainView) ShowPreview(img image.Image, details inspect.Details) {
	if mv.previewPanel == nil {
		return
	}
	fyne.Do(func() {
		mv.previewPanel.ShowImage(img, details)
	})
}

// ShowPreviewDetails displays only file details, for undecodable files
func (mv *MainView) ShowPreviewDetails(details inspect.Details, reason string) {
	if mv.previewPanel == nil {
		return
	}
	fyne.Do(func() {
		mv.previewPanel.ShowDetailsOnly(details, reason)
	})
}

// ClearPreview resets the preview pane
func (mv *MainView) ClearPreview() {
	if mv.previewPanel == nil {
		return
	}
	mv.previewPanel.Clear()
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(title)
		dialog.ShowError(err, mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// ShowFolderDialog displays a folder chooser starting at startDir when it is listable
func (mv *MainView) ShowFolderDialog(startDir string, callback func(string, error)) {
	fyne.Do(func() {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				callback("", err)
				return
			}
			if uri == nil {
				return
			}
			callback(uri.Path(), nil)
		}, mv.window)

		if startDir != "" {
			if lister, err := storage.ListerForURI(storage.NewFileURI(startDir)); err == nil {
				d.SetLocation(lister)
			}
		}
		d.Show()
	})
}

// ShowSaveDialog displays a file save dialog for the exported list
func (mv *MainView) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	fyne.Do(func() {
		d := dialog.NewFileSave(callback, mv.window)
		d.SetFileName(fileName)
		d.Show()
	})
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}

// ShowAboutDialog displays application information
func (mv *MainView) ShowAboutDialog(appName, version, description string) {
	fyne.Do(func() {
		content := container.NewVBox(
			widget.NewLabel(appName),
			widget.NewLabel(fmt.Sprintf("Version: %s", version)),
			widget.NewLabel(""),
			widget.NewLabel(description),
		)

		dialog.ShowCustom("About", "Close", content, mv.window)
	})
}

// ViewState is a snapshot of what the window currently shows
type ViewState struct {
	FolderPath    string
	FindEnabled   bool
	HasResult     bool
	UnusedNames   []string
	PreviewName   string
	StatusMessage string
}

// GetViewState returns the current view state. Call from the UI goroutine.
func (mv *MainView) GetViewState() ViewState {
	state := ViewState{
		FolderPath:    mv.folderPanel.Path(),
		FindEnabled:   mv.refPanel.FindEnabled(),
		HasResult:     mv.resultsPanel.IsVisible(),
		UnusedNames:   mv.resultsPanel.Names(),
		StatusMessage: mv.statusBar.GetStatus(),
	}
	if mv.previewPanel != nil {
		state.PreviewName = mv.previewPanel.Shown()
	}
	return state
}
