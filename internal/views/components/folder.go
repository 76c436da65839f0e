package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const folderPlaceholder = "<Select the images folder.>"

// FolderPanel shows the chosen images folder, a Browse button and the
// editable reference prefix derived from the folder.
type FolderPanel struct {
	card         *widget.Card
	pathEntry    *widget.Entry
	browseButton *widget.Button
	prefixEntry  *widget.Entry

	browseHandler func()
	prefixHandler func(string)
}

// NewFolderPanel creates the images folder panel
func NewFolderPanel() *FolderPanel {
	fp := &FolderPanel{}
	fp.createComponents()
	fp.buildLayout()
	return fp
}

func (fp *FolderPanel) createComponents() {
	fp.pathEntry = widget.NewEntry()
	fp.pathEntry.SetPlaceHolder(folderPlaceholder)
	fp.pathEntry.Disable()

	fp.browseButton = widget.NewButton("Browse...", func() {
		if fp.browseHandler != nil {
			fp.browseHandler()
		}
	})

	fp.prefixEntry = widget.NewEntry()
	fp.prefixEntry.SetPlaceHolder("<project folder>")
	fp.prefixEntry.Disable()
	fp.prefixEntry.OnChanged = func(text string) {
		if fp.prefixHandler != nil {
			fp.prefixHandler(text)
		}
	}
}

func (fp *FolderPanel) buildLayout() {
	pathRow := container.NewBorder(nil, nil, nil, fp.browseButton, fp.pathEntry)
	prefixRow := container.NewBorder(nil, nil, widget.NewLabel("Reference prefix:"), widget.NewLabel("/<image> "), fp.prefixEntry)
	fp.card = widget.NewCard("Images Folder", "", container.NewVBox(pathRow, prefixRow))
}

// SetBrowseHandler sets the handler for the Browse button
func (fp *FolderPanel) SetBrowseHandler(handler func()) {
	fp.browseHandler = handler
}

// SetPrefixChangeHandler sets the handler for edits of the reference prefix
func (fp *FolderPanel) SetPrefixChangeHandler(handler func(string)) {
	fp.prefixHandler = handler
}

// SetFolder shows path and pre-fills the prefix without firing the change handler
func (fp *FolderPanel) SetFolder(path, prefix string) {
	fp.pathEntry.SetText(path)

	handler := fp.prefixHandler
	fp.prefixHandler = nil
	fp.prefixEntry.SetText(prefix)
	fp.prefixHandler = handler
	fp.prefixEntry.Enable()
}

// Path returns the displayed folder path
func (fp *FolderPanel) Path() string {
	return fp.pathEntry.Text
}

// GetContainer returns the panel
func (fp *FolderPanel) GetContainer() fyne.CanvasObject {
	return fp.card
}
