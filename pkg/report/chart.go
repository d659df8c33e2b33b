package report

import (
	"errors"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"agristat/pkg/analytics"
)

var ErrNoSeries = errors.New("report: nothing to plot")

var (
	historyColor    = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	predictionColor = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	boundColor      = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// WriteProjectionChart renders history, the adjusted forecast and its
// bounds as a PNG. The forecast line starts at the last observed point so
// the two series join.
func WriteProjectionChart(w io.Writer, history []analytics.Point, predictions []analytics.PredictionResult, title string) error {
	if len(history) == 0 && len(predictions) == 0 {
		return ErrNoSeries
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Season"
	p.Y.Label.Text = "Production (thousand 60kg bags)"
	p.Add(plotter.NewGrid())

	hist := make(plotter.XYs, len(history))
	for i, pt := range history {
		hist[i].X, hist[i].Y = float64(pt.Year), pt.Value
	}

	var pred, lower, upper plotter.XYs
	if n := len(history); n > 0 && len(predictions) > 0 {
		pred = append(pred, hist[n-1])
	}
	for _, pr := range predictions {
		x := float64(pr.TargetYear)
		pred = append(pred, plotter.XY{X: x, Y: pr.PredictedValue})
		lower = append(lower, plotter.XY{X: x, Y: pr.LowerBound})
		upper = append(upper, plotter.XY{X: x, Y: pr.UpperBound})
	}

	if len(hist) > 0 {
		l, s, err := plotter.NewLinePoints(hist)
		if err != nil {
			return err
		}
		l.Color, s.Color = historyColor, historyColor
		p.Add(l, s)
		p.Legend.Add("history", l, s)
	}
	if len(predictions) > 0 {
		l, s, err := plotter.NewLinePoints(pred)
		if err != nil {
			return err
		}
		l.Color, s.Color = predictionColor, predictionColor
		l.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l, s)
		p.Legend.Add("projection", l, s)

		for _, band := range []plotter.XYs{lower, upper} {
			b, err := plotter.NewLine(band)
			if err != nil {
				return err
			}
			b.Color = boundColor
			b.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
			p.Add(b)
		}
	}
	p.Legend.Top = true

	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
