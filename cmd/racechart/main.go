// Command racechart renders recorded race telemetry as a standalone HTML
// page: a rolling-speed timeline per boat, and optionally the boat's polar
// performance curves for comparison. It consumes only the plain query
// results of the replay core.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/regatta-data/race.replay/internal/config"
	"github.com/regatta-data/race.replay/internal/ingest"
	"github.com/regatta-data/race.replay/internal/monitoring"
	"github.com/regatta-data/race.replay/internal/polar"
	"github.com/regatta-data/race.replay/internal/replay"
	"github.com/regatta-data/race.replay/internal/telemetry"
)

var (
	outPath    = flag.String("out", "racechart.html", "Output HTML file")
	configPath = flag.String("config", "", "Path to replay tuning JSON (optional)")
	polarPath  = flag.String("polar", "", "Path to a polar performance table (optional)")
	window     = flag.Int("window", 0, "Rolling-average window in seconds (0 = config default)")
	theme      = flag.String("theme", "", "Chart theme (default from config)")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: racechart [flags] telemetry.csv [more.csv ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	windowSeconds := cfg.GetWindowSeconds()
	if *window > 0 {
		windowSeconds = *window
	}
	chartTheme := cfg.GetChartTheme()
	if *theme != "" {
		chartTheme = *theme
	}

	logf := monitoring.Prefixed("racechart")
	datasets := make([]telemetry.Dataset, 0, flag.NArg())
	for _, path := range flag.Args() {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
			os.Exit(1)
		}
		ds, warnings, err := ingest.Ingest(string(raw))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ingesting %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, w := range warnings {
			logf("%s: %s", path, w)
		}
		datasets = append(datasets, ds)
	}
	ds := telemetry.Merge(datasets...)

	page := components.NewPage()
	page.AddCharts(speedChart(ds, windowSeconds, cfg.GetStepMs(), chartTheme))

	if *polarPath != "" {
		raw, err := os.ReadFile(*polarPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", *polarPath, err)
			os.Exit(1)
		}
		points, err := polar.ParseTable(string(raw))
		if err != nil {
			fmt.Fprintf(os.Stderr, "parsing polar table: %v\n", err)
			os.Exit(1)
		}
		page.AddCharts(polarChart(polar.GroupByWindSpeed(points), chartTheme))
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "rendering charts: %v\n", err)
		os.Exit(1)
	}
	logf("wrote %s", *outPath)
}

// speedChart plots each boat's rolling-average speed across the session.
func speedChart(ds telemetry.Dataset, windowSeconds int, stepMs int64, theme string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Race Replay — Rolling Speed", Theme: theme, Width: "1200px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Rolling average speed",
			Subtitle: fmt.Sprintf("window=%ds boats=%d", windowSeconds, len(ds.Tracks)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "SOG (kn)"}),
	)

	var labels []string
	for t := ds.TimeMin; t <= ds.TimeMax; t += stepMs {
		labels = append(labels, time.UnixMilli(t).UTC().Format("15:04:05"))
	}
	line.SetXAxis(labels)

	for _, track := range ds.Tracks {
		data := make([]opts.LineData, 0, len(labels))
		for t := ds.TimeMin; t <= ds.TimeMax; t += stepMs {
			if avg, ok := replay.RollingAverageSpeed(track, t, windowSeconds); ok {
				data = append(data, opts.LineData{Value: avg})
			} else {
				data = append(data, opts.LineData{Value: nil})
			}
		}
		line.AddSeries(track.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: track.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: track.Color}),
		)
	}
	return line
}

// polarChart plots boat speed against wind angle, one series per wind speed.
func polarChart(curves []polar.Curve, theme string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Polar Performance", Theme: theme, Width: "900px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Polar performance",
			Subtitle: fmt.Sprintf("curves=%d", len(curves)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "TWA (deg)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Boat speed (kn)"}),
	)

	// The curves may report different angle sets; align all series on the
	// sorted union of angles so the X axis is shared.
	angleSet := map[float64]bool{}
	for _, c := range curves {
		for _, p := range c.Points {
			angleSet[p.Angle] = true
		}
	}
	angles := make([]float64, 0, len(angleSet))
	for a := range angleSet {
		angles = append(angles, a)
	}
	sort.Float64s(angles)

	labels := make([]string, len(angles))
	for i, a := range angles {
		labels[i] = fmt.Sprintf("%g", a)
	}
	line.SetXAxis(labels)

	for _, c := range curves {
		byAngle := map[float64]float64{}
		for _, p := range c.Points {
			byAngle[p.Angle] = p.BoatSpeed
		}
		data := make([]opts.LineData, len(angles))
		for i, a := range angles {
			if v, ok := byAngle[a]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(fmt.Sprintf("%g kn", c.TrueWindSpeed), data)
	}
	return line
}
