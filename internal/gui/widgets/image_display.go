package widgets

import (
	"fmt"
	"image"

	"lane-detector/internal/models"
	"lane-detector/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

const (
	ImageAreaWidth  = 400
	ImageAreaHeight = 200
	// DisplayScale enlarges the small pipeline images before they reach fyne
	DisplayScale = 4
)

// StageDisplay shows the resized, binary and edge images of one result
type StageDisplay struct {
	container fyne.CanvasObject
	resized   *canvas.Image
	binary    *canvas.Image
	edges     *canvas.Image
	summary   *widget.Label
}

func NewStageDisplay() *StageDisplay {
	display := &StageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func newStageCanvas() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (sd *StageDisplay) createComponents() {
	sd.resized = newStageCanvas()
	sd.binary = newStageCanvas()
	sd.edges = newStageCanvas()
	sd.summary = widget.NewLabel("")
}

func (sd *StageDisplay) setupLayout() {
	labelled := func(title string, img *canvas.Image) fyne.CanvasObject {
		return container.NewBorder(
			widget.NewRichTextFromMarkdown("**"+title+"**"),
			nil, nil, nil,
			img,
		)
	}

	sd.container = container.NewBorder(
		nil,
		sd.summary,
		nil, nil,
		container.NewGridWithColumns(3,
			labelled("Resized", sd.resized),
			labelled("Binary", sd.binary),
			labelled("Edges", sd.edges),
		),
	)
}

func (sd *StageDisplay) GetContainer() fyne.CanvasObject {
	return sd.container
}

func (sd *StageDisplay) SetResult(result *pipeline.Result) {
	if result == nil {
		for _, img := range []*canvas.Image{sd.resized, sd.binary, sd.edges} {
			img.Image = nil
			img.Refresh()
		}
		sd.summary.SetText("")
		return
	}

	sd.setImage(sd.resized, result.Resized)
	sd.setImage(sd.binary, result.Binary)
	sd.setImage(sd.edges, result.Edges)
	sd.summary.SetText(Summary(result))
}

// Summary describes a result in one line
func Summary(result *pipeline.Result) string {
	return fmt.Sprintf("%dx%d → %dx%d, threshold %d, edges in %s",
		result.Original.Width(), result.Original.Height(),
		result.Resized.Width(), result.Resized.Height(),
		result.Threshold,
		result.Timings[pipeline.StageEdges])
}

func (sd *StageDisplay) setImage(target *canvas.Image, buf *models.ImageBuffer) {
	if buf == nil {
		target.Image = nil
	} else {
		target.Image = Enlarge(buf, DisplayScale)
	}
	target.Refresh()
}

// Enlarge upscales buf by an integer factor without smoothing
func Enlarge(buf *models.ImageBuffer, factor int) *image.Gray {
	if factor < 1 {
		factor = 1
	}
	src := buf.ToGray()
	dst := image.NewGray(image.Rect(0, 0, buf.Width()*factor, buf.Height()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func (sd *StageDisplay) ResizedImage() *canvas.Image { return sd.resized }

func (sd *StageDisplay) BinaryImage() *canvas.Image { return sd.binary }

func (sd *StageDisplay) EdgesImage() *canvas.Image { return sd.edges }

func (sd *StageDisplay) SummaryText() string { return sd.summary.Text }
