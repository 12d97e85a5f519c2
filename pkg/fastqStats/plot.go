package fastqStats

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// histogram bins of the png figure
const pngBins = 20

func GenerateBarItems(vs []int) []opts.BarData {
	var items = make([]opts.BarData, 0, len(vs))
	for _, v := range vs {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}

func histogramBar(title, subtitle string, hist map[int]int) *charts.Bar {
	var (
		bar    = charts.NewBar()
		keys   = sortedKeys(hist)
		counts = make([]int, len(keys))
	)
	for i, k := range keys {
		counts[i] = hist[k]
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	bar.SetXAxis(keys).AddSeries("reads", GenerateBarItems(counts))
	return bar
}

// PlotHTML renders the length and average quality distributions of every
// run into one html page.
func PlotHTML(path string, runs []*RunStats) {
	var (
		page   = components.NewPage()
		output = osUtil.Create(path)
	)
	defer simpleUtil.DeferClose(output)

	for _, s := range runs {
		page.AddCharts(
			histogramBar("Read Lengths", s.Name, s.LengthHistogram),
			histogramBar("Quality Scores", s.Name, s.QualityHistogram),
		)
	}
	simpleUtil.CheckErr(page.Render(output))
}

// histogramXYs turns hist into weighted points at key/scale.
func histogramXYs(hist map[int]int, scale float64) plotter.XYs {
	var xys = make(plotter.XYs, 0, len(hist))
	for _, k := range sortedKeys(hist) {
		xys = append(xys, plotter.XY{X: float64(k) / scale, Y: float64(hist[k])})
	}
	// a single distinct value still needs a non-empty x range
	if len(xys) == 1 {
		xys = append(xys, plotter.XY{X: xys[0].X + 1})
	}
	return xys
}

func histogramPlot(title, xLabel string, hist map[int]int, scale float64) (*plot.Plot, error) {
	var p = plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Reads"

	h, err := plotter.NewHistogram(histogramXYs(hist, scale), pngBins)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	return p, nil
}

// PlotPNG draws one row per run: read length histogram on the left,
// average quality histogram on the right.
func PlotPNG(path string, runs []*RunStats) error {
	var plots = make([][]*plot.Plot, len(runs))
	for i, s := range runs {
		lengthPlot, err := histogramPlot("Read Lengths: "+s.Name, "Length", s.LengthHistogram, 1)
		if err != nil {
			return err
		}
		qualityPlot, err := histogramPlot("Quality Scores: "+s.Name, "Average Quality", s.QualityCentiHistogram, 100)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{lengthPlot, qualityPlot}
	}

	var (
		img   = vgimg.New(vg.Points(864), vg.Points(360*float64(len(runs))))
		dc    = draw.New(img)
		tiles = draw.Tiles{
			Rows: len(runs),
			Cols: 2,
			PadX: vg.Millimeter * 4,
			PadY: vg.Millimeter * 4,
		}
		canvases = plot.Align(plots, tiles, dc)
	)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	var out, err = os.Create(path)
	if err != nil {
		return err
	}
	defer simpleUtil.DeferClose(out)
	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(out)
	return err
}
