package components

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"unused-image-finder/internal/inspect"
)

const previewPlaceholder = "Select an unused image to preview it"

// PreviewPanel shows a thumbnail and file details of the selected unused image
type PreviewPanel struct {
	card        *widget.Card
	image       *canvas.Image
	message     *widget.Label
	detailsText *widget.Label
	edge        float32
	shown       string
}

// NewPreviewPanel creates a preview panel whose image area is edge pixels square
func NewPreviewPanel(edge int) *PreviewPanel {
	pp := &PreviewPanel{edge: float32(edge)}
	pp.createComponents()
	pp.buildLayout()
	return pp
}

func (pp *PreviewPanel) createComponents() {
	pp.image = canvas.NewImageFromImage(nil)
	pp.image.FillMode = canvas.ImageFillContain
	pp.image.ScaleMode = canvas.ImageScaleSmooth
	pp.image.SetMinSize(fyne.NewSize(pp.edge, pp.edge))
	pp.image.Hide()

	pp.message = widget.NewLabel(previewPlaceholder)
	pp.message.Alignment = fyne.TextAlignCenter
	pp.message.Wrapping = fyne.TextWrapWord

	pp.detailsText = widget.NewLabel("")
	pp.detailsText.Wrapping = fyne.TextWrapWord
}

func (pp *PreviewPanel) buildLayout() {
	bg := canvas.NewRectangle(color.RGBA{R: 245, G: 245, B: 245, A: 255})
	bg.SetMinSize(fyne.NewSize(pp.edge, pp.edge))
	area := container.NewStack(bg, pp.image, container.NewCenter(pp.message))
	pp.card = widget.NewCard("Preview", "", container.NewBorder(nil, pp.detailsText, nil, nil, area))
}

// ShowImage displays img with the details of its file
func (pp *PreviewPanel) ShowImage(img image.Image, details inspect.Details) {
	pp.image.Image = img
	pp.image.Show()
	pp.image.Refresh()
	pp.message.Hide()
	pp.detailsText.SetText(FormatDetails(details))
	pp.shown = details.Name
}

// ShowDetailsOnly is used for files OpenCV cannot decode, e.g. EPS
func (pp *PreviewPanel) ShowDetailsOnly(details inspect.Details, reason string) {
	pp.image.Image = nil
	pp.image.Hide()
	pp.message.SetText(reason)
	pp.message.Show()
	pp.detailsText.SetText(FormatDetails(details))
	pp.shown = details.Name
}

// Clear returns the panel to its placeholder
func (pp *PreviewPanel) Clear() {
	pp.image.Image = nil
	pp.image.Hide()
	pp.message.SetText(previewPlaceholder)
	pp.message.Show()
	pp.detailsText.SetText("")
	pp.shown = ""
}

// Shown returns the name of the previewed file, or "" when nothing is shown
func (pp *PreviewPanel) Shown() string {
	return pp.shown
}

// GetContainer returns the panel
func (pp *PreviewPanel) GetContainer() fyne.CanvasObject {
	return pp.card
}

// FormatDetails renders file details as a short multi-line label
func FormatDetails(d inspect.Details) string {
	if d.Name == "" {
		return ""
	}
	text := fmt.Sprintf("%s\n%s, %s", d.Name, formatSize(d.Size), d.ModTime.Format("2006-01-02 15:04"))
	if d.Decodable {
		text += fmt.Sprintf("\n%s px, %d channels", d.Dimensions(), d.Channels)
	}
	return text
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
