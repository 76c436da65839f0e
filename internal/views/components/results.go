package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"unused-image-finder/internal/matcher"
	"unused-image-finder/internal/report"
)

// ResultsPanel lists the unused images of the last run. It stays hidden until
// the first run, like the results area of the original window.
type ResultsPanel struct {
	card         *widget.Card
	list         *widget.List
	placeholder  *widget.Label
	summary      *widget.Label
	copyButton   *widget.Button
	exportButton *widget.Button
	body         *fyne.Container

	names []string

	selectHandler func(string)
	copyHandler   func()
	exportHandler func()
}

// NewResultsPanel creates the unused images panel
func NewResultsPanel() *ResultsPanel {
	rp := &ResultsPanel{}
	rp.createComponents()
	rp.buildLayout()
	return rp
}

func (rp *ResultsPanel) createComponents() {
	rp.list = widget.NewList(
		func() int { return len(rp.names) },
		func() fyne.CanvasObject { return widget.NewLabel("template-image-name.png") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(rp.names[id])
		},
	)
	rp.list.OnSelected = func(id widget.ListItemID) {
		if rp.selectHandler != nil && id >= 0 && id < len(rp.names) {
			rp.selectHandler(rp.names[id])
		}
	}

	rp.placeholder = widget.NewLabel(report.NoUnusedImages)
	rp.placeholder.Alignment = fyne.TextAlignCenter
	rp.placeholder.Hide()

	rp.summary = widget.NewLabel("")

	rp.copyButton = widget.NewButton("Copy", func() {
		if rp.copyHandler != nil {
			rp.copyHandler()
		}
	})
	rp.exportButton = widget.NewButton("Export...", func() {
		if rp.exportHandler != nil {
			rp.exportHandler()
		}
	})
}

func (rp *ResultsPanel) buildLayout() {
	actions := container.NewHBox(rp.summary, layout.NewSpacer(), rp.copyButton, rp.exportButton)
	rp.body = container.NewBorder(nil, actions, nil, nil, container.NewStack(rp.list, rp.placeholder))
	rp.card = widget.NewCard("Unused Images", "", rp.body)
	rp.card.Hide()
}

// SetSelectHandler sets the handler called with the name of a selected image
func (rp *ResultsPanel) SetSelectHandler(handler func(string)) {
	rp.selectHandler = handler
}

// SetCopyHandler sets the handler for the Copy button
func (rp *ResultsPanel) SetCopyHandler(handler func()) {
	rp.copyHandler = handler
}

// SetExportHandler sets the handler for the Export button
func (rp *ResultsPanel) SetExportHandler(handler func()) {
	rp.exportHandler = handler
}

// ShowResult renders result and reveals the panel
func (rp *ResultsPanel) ShowResult(result matcher.Result) {
	rp.names = append([]string(nil), result.Unused...)
	rp.list.UnselectAll()
	rp.list.Refresh()

	if result.Empty() {
		rp.list.Hide()
		rp.placeholder.Show()
	} else {
		rp.placeholder.Hide()
		rp.list.Show()
	}
	rp.summary.SetText(report.Summary(result))
	rp.card.Show()
}

// Clear empties the list and hides the panel
func (rp *ResultsPanel) Clear() {
	rp.names = nil
	rp.list.UnselectAll()
	rp.list.Refresh()
	rp.summary.SetText("")
	rp.card.Hide()
}

// Names returns the names currently listed
func (rp *ResultsPanel) Names() []string {
	return append([]string(nil), rp.names...)
}

// IsVisible reports whether a result is on screen
func (rp *ResultsPanel) IsVisible() bool {
	return rp.card.Visible()
}

// GetContainer returns the panel
func (rp *ResultsPanel) GetContainer() fyne.CanvasObject {
	return rp.card
}
