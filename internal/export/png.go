package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

// PNG rasterizes strokes onto a white w×h image.
func PNG(out io.Writer, w, h int, strokes []state.Stroke) error {
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	l := newLayout(strokes, float64(w), float64(h), float64(min(w, h))/20)
	for _, st := range strokes {
		dc.SetLineWidth(max(float64(st.Width)*l[st.Space].scale, 1))
		segments := len(st.Points) - 1
		for i := 1; i < len(st.Points); i++ {
			dc.SetColor(segmentColor(st, i-1, segments).Color())
			x0, y0 := l.apply(st, st.Points[i-1])
			x1, y1 := l.apply(st, st.Points[i])
			dc.MoveTo(x0, y0)
			dc.LineTo(x1, y1)
			if err := dc.Stroke(); err != nil {
				return fmt.Errorf("export png: stroke %s: %w", st.ID, err)
			}
		}
	}
	if err := dc.EncodePNG(out); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}
