// Package report renders recorded samples for offline inspection.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Histogram renders the samples as a PNG histogram at path.
func Histogram(samples []float64, bins int, title, path string) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("could not create plot: err = %w", err)
	}
	p.Title.Text = title
	p.X.Label.Text = "seconds"

	hist, err := plotter.NewHist(plotter.Values(samples), bins)
	if err != nil {
		return fmt.Errorf("could not create histogram: err = %w", err)
	}
	p.Add(hist)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("could not save histogram: err = %w", err)
	}
	return nil
}
