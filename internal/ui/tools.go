package ui

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/colornames"

	"github.com/ItsNotACoffee/HoloPlayground/internal/export"
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

// palette is the set of swatches offered in the toolbar.
var palette = []string{"black", "crimson", "forestgreen", "royalblue", "gold", "darkorange", "purple", "white"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toggleLabel renders a mode button caption.
func toggleLabel(name string, on bool) string {
	if on {
		return name + ": on"
	}
	return name + ": off"
}

// --- The Main Toolbar ---
// NewToolbar builds the brush and mode controls for board. history holds the
// finished strokes used for export.
func NewToolbar(board *BoardWidget, history *state.Board, win fyne.Window) fyne.CanvasObject {
	tr := board.tracker

	// --- Color Palette ---
	onColorTapped := func(c color.Color) {
		tr.SetColor(paint.ColorOf(c))
	}
	colorBox := container.NewHBox()
	for _, name := range palette {
		colorBox.Add(newColorSwatch(colornames.Map[name], onColorTapped))
	}

	// --- Brush Width Slider ---
	widthSlider := widget.NewSlider(1.0, 50.0)
	widthSlider.SetValue(float64(tr.Canvas().Width * 10))
	widthSlider.OnChanged = func(val float64) {
		tr.SetWidth(float32(val / 10))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	// --- Modes ---
	var rainbow, space, resize *widget.Button
	rainbow = widget.NewButton(toggleLabel("Rainbow", tr.Canvas().Rainbow), func() {
		rainbow.SetText(toggleLabel("Rainbow", tr.ToggleRainbow()))
	})
	space = widget.NewButton(toggleLabel("3D", tr.Canvas().Is3D), func() {
		space.SetText(toggleLabel("3D", tr.Toggle3D()))
	})
	resize = widget.NewButton(toggleLabel("Resize", tr.Canvas().Resizing), func() {
		on := tr.ToggleResize()
		resize.SetText(toggleLabel("Resize", on))
		if on {
			board.SetStatus("Scroll to zoom the board")
		} else {
			board.SetStatus("Ready")
		}
	})
	place := widget.NewButton("Place", func() {
		tr.StartPlacement()
		board.SetStatus("Drag to move the board, release to place it")
	})

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			tr.Reset()
			board.surface.ResetView()
			board.Refresh()
		}), // Reset
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			saveExport(win, board, "board.pdf", func(w io.Writer) error {
				return export.PDF(w, history.Site(), history.Strokes())
			})
		}), // PDF
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			size := board.Size()
			saveExport(win, board, "board.png", func(w io.Writer) error {
				return export.PNG(w, int(size.Width), int(size.Height), history.Strokes())
			})
		}), // PNG
	)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		rainbow,
		space,
		resize,
		place,
		layout.NewSpacer(),
		tb,
	)
}

func saveExport(win fyne.Window, board *BoardWidget, name string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := write(wc); err != nil {
			dialog.ShowError(fmt.Errorf("export %s: %w", name, err), win)
			return
		}
		board.SetStatus("Exported " + strings.TrimPrefix(wc.URI().String(), "file://"))
	}, win)
	d.SetFileName(name)
	d.Show()
}
