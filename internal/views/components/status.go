package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and folder information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	folderInfo  *widget.Label
	resultInfo  *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.folderInfo = widget.NewLabel("No folder selected")
	sb.resultInfo = widget.NewLabel("")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.folderInfo,
		widget.NewSeparator(),
		sb.resultInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetFolderInfo shows how many images the current folder holds
func (sb *StatusBar) SetFolderInfo(images int, prefix string) {
	sb.folderInfo.SetText(fmt.Sprintf("%d files, prefix %q", images, prefix+"/"))
}

// SetResultInfo shows the summary of the last run
func (sb *StatusBar) SetResultInfo(summary string) {
	sb.resultInfo.SetText(summary)
}

// Reset clears what the status bar shows about the previous folder
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.folderInfo.SetText("No folder selected")
	sb.resultInfo.SetText("")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
