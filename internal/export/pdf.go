package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

const (
	pageW, pageH = 297.0, 210.0 // A4 landscape, mm
	pageMargin   = 10.0
)

// PDF renders strokes onto a single A4 page. Each segment takes the color
// interpolated between the stroke's end colors.
func PDF(w io.Writer, site string, strokes []state.Stroke) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("AirPaint drawing", true)
	p.SetCreator("AirPaint", true)
	p.SetSubject("session "+site, true)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	p.AddPage()

	l := newLayout(strokes, pageW, pageH, pageMargin)
	for _, st := range strokes {
		p.SetLineWidth(max(float64(st.Width)*l[st.Space].scale, 0.2))
		segments := len(st.Points) - 1
		for i := 1; i < len(st.Points); i++ {
			c := segmentColor(st, i-1, segments)
			p.SetDrawColor(int(c.R*255), int(c.G*255), int(c.B*255))
			x0, y0 := l.apply(st, st.Points[i-1])
			x1, y1 := l.apply(st, st.Points[i])
			p.Line(x0, y0, x1, y1)
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
