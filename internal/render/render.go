// Package render рисует карту городов, маршрут и кривую сходимости в PNG.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tspRepair/internal/tsp"
)

// ErrNoPositions — у экземпляра нет координат городов.
var ErrNoPositions = errors.New("render: у экземпляра нет координат городов")

var tourColor = color.RGBA{R: 200, A: 255}

const (
	width  = 6 * vg.Inch
	height = 6 * vg.Inch
)

func cityPoints(inst *tsp.Instance) (plotter.XYs, error) {
	if inst.Positions == nil {
		return nil, ErrNoPositions
	}
	pts := make(plotter.XYs, inst.Cities)
	for i, p := range inst.Positions {
		pts[i].X = p[0]
		pts[i].Y = p[1]
	}
	return pts, nil
}

// addCities добавляет на график точки городов с подписями.
func addCities(p *plot.Plot, inst *tsp.Instance, pts plotter.XYs) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Radius = vg.Points(4)

	names := make([]string, inst.Cities)
	for i := range names {
		names[i] = inst.Name(i)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: names})
	if err != nil {
		return err
	}

	p.Add(sc, labels)
	return nil
}

// Cities сохраняет карту городов.
func Cities(inst *tsp.Instance, path string) error {
	pts, err := cityPoints(inst)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "Cities Map"
	if err := addCities(p, inst, pts); err != nil {
		return err
	}
	return p.Save(width, height, path)
}

// Tour сохраняет карту городов с замкнутым маршрутом.
func Tour(inst *tsp.Instance, tour []int, title, path string) error {
	pts, err := cityPoints(inst)
	if err != nil {
		return err
	}
	if err := tsp.ValidatePermutation(tour, inst.Cities); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	p := plot.New()
	p.Title.Text = title

	route := make(plotter.XYs, len(tour)+1)
	for i, c := range tour {
		route[i] = pts[c]
	}
	route[len(tour)] = pts[tour[0]]

	line, err := plotter.NewLine(route)
	if err != nil {
		return err
	}
	line.LineStyle.Color = tourColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	if err := addCities(p, inst, pts); err != nil {
		return err
	}
	return p.Save(width, height, path)
}

// Convergence сохраняет график лучшей длины маршрута по итерациям.
func Convergence(history []float64, title, path string) error {
	if len(history) == 0 {
		return errors.New("render: пустая история")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Best distance"

	pts := make(plotter.XYs, len(history))
	for i, v := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Color = tourColor
	p.Add(line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
