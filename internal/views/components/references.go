package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const referencesPlaceholder = "<Paste list of imported graphic references here.>"

// ReferencePanel holds the pasted FrameMaker list and the action buttons
type ReferencePanel struct {
	card        *widget.Card
	entry       *widget.Entry
	pasteButton *widget.Button
	clearButton *widget.Button
	findButton  *widget.Button

	pasteHandler func()
	findHandler  func()
}

// NewReferencePanel creates the reference list panel
func NewReferencePanel() *ReferencePanel {
	rp := &ReferencePanel{}
	rp.createComponents()
	rp.buildLayout()
	return rp
}

func (rp *ReferencePanel) createComponents() {
	rp.entry = widget.NewMultiLineEntry()
	rp.entry.SetPlaceHolder(referencesPlaceholder)
	rp.entry.Wrapping = fyne.TextWrapWord
	rp.entry.SetMinRowsVisible(6)

	rp.pasteButton = widget.NewButton("Paste", func() {
		if rp.pasteHandler != nil {
			rp.pasteHandler()
		}
	})
	rp.clearButton = widget.NewButton("Clear", func() {
		rp.entry.SetText("")
	})

	rp.findButton = widget.NewButton("Show Unused Images", func() {
		if rp.findHandler != nil {
			rp.findHandler()
		}
	})
	rp.findButton.Importance = widget.HighImportance
	rp.findButton.Disable()
}

func (rp *ReferencePanel) buildLayout() {
	buttons := container.NewHBox(rp.pasteButton, rp.clearButton, layout.NewSpacer(), rp.findButton)
	rp.card = widget.NewCard("FrameMaker's List of Graphic References", "",
		container.NewBorder(nil, buttons, nil, nil, rp.entry))
}

// SetPasteHandler sets the handler for the Paste button
func (rp *ReferencePanel) SetPasteHandler(handler func()) {
	rp.pasteHandler = handler
}

// SetFindHandler sets the handler for the Show Unused Images button
func (rp *ReferencePanel) SetFindHandler(handler func()) {
	rp.findHandler = handler
}

// Text returns the current reference list
func (rp *ReferencePanel) Text() string {
	return rp.entry.Text
}

// SetText replaces the reference list
func (rp *ReferencePanel) SetText(text string) {
	rp.entry.SetText(text)
}

// SetFindEnabled enables the match action once a folder is selected
func (rp *ReferencePanel) SetFindEnabled(enabled bool) {
	if enabled {
		rp.findButton.Enable()
	} else {
		rp.findButton.Disable()
	}
}

// FindEnabled reports whether the match action can be triggered
func (rp *ReferencePanel) FindEnabled() bool {
	return !rp.findButton.Disabled()
}

// SetBusy disables the match action while a run is in flight
func (rp *ReferencePanel) SetBusy(busy bool) {
	rp.SetFindEnabled(!busy)
}

// GetContainer returns the panel
func (rp *ReferencePanel) GetContainer() fyne.CanvasObject {
	return rp.card
}
