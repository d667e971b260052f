package gui

import (
	"fmt"
	"path/filepath"
	"strings"

	"lane-detector/internal/gui/widgets"
	"lane-detector/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// View shows one tab per processed image
type View struct {
	window   fyne.Window
	saver    *pipeline.ImageSaver
	outDir   string
	tabs     *container.AppTabs
	displays []*widgets.StageDisplay
	results  []*pipeline.Result
	status   *widget.Label
	content  fyne.CanvasObject
}

// NewView builds the viewer. Edge maps are written to outDir, or next to the
// source image when outDir is empty.
func NewView(window fyne.Window, saver *pipeline.ImageSaver, outDir string) *View {
	v := &View{
		window: window,
		saver:  saver,
		outDir: outDir,
		tabs:   container.NewAppTabs(),
		status: widget.NewLabel("No images"),
	}

	saveButton := widget.NewButton("Save Edges", func() {
		path, err := v.SaveSelected()
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		v.status.SetText("Saved " + path)
	})

	v.content = container.NewBorder(nil, container.NewHBox(saveButton, v.status), nil, nil, v.tabs)
	return v
}

func (v *View) Content() fyne.CanvasObject {
	return v.content
}

func (v *View) SetResults(results []*pipeline.Result) {
	v.results = results
	v.displays = make([]*widgets.StageDisplay, len(results))

	items := make([]*container.TabItem, len(results))
	for i, res := range results {
		display := widgets.NewStageDisplay()
		display.SetResult(res)
		v.displays[i] = display
		items[i] = container.NewTabItem(filepath.Base(res.Path), display.GetContainer())
	}

	v.tabs.SetItems(items)
	if len(items) > 0 {
		v.tabs.SelectIndex(0)
	}
	v.status.SetText(fmt.Sprintf("%d image(s)", len(results)))
}

func (v *View) TabCount() int {
	return len(v.tabs.Items)
}

func (v *View) Display(i int) *widgets.StageDisplay {
	return v.displays[i]
}

// SaveSelected writes the edge map of the selected tab and returns its path
func (v *View) SaveSelected() (string, error) {
	idx := v.tabs.SelectedIndex()
	if idx < 0 || idx >= len(v.results) {
		return "", fmt.Errorf("no image selected")
	}

	path := EdgesPath(v.results[idx].Path, v.outDir)
	if err := v.saver.SaveToPath(path, v.results[idx].Edges); err != nil {
		return "", err
	}
	return path, nil
}

// EdgesPath derives "<name>_edges.png" for src, placed in outDir if set
func EdgesPath(src, outDir string) string {
	dir := filepath.Dir(src)
	if outDir != "" {
		dir = outDir
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, base+"_edges.png")
}
