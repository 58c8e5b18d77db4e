// Command replay ingests recorded race telemetry CSV files, merges them into
// one session dataset and steps through the replay interval, emitting one
// CSV row per boat per step with the interpolated position and instruments.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/regatta-data/race.replay/internal/config"
	"github.com/regatta-data/race.replay/internal/geo"
	"github.com/regatta-data/race.replay/internal/ingest"
	"github.com/regatta-data/race.replay/internal/monitoring"
	"github.com/regatta-data/race.replay/internal/profiling"
	"github.com/regatta-data/race.replay/internal/replay"
	"github.com/regatta-data/race.replay/internal/telemetry"
	"github.com/regatta-data/race.replay/internal/units"
)

var (
	configPath  = flag.String("config", "", "Path to replay tuning JSON (optional)")
	window      = flag.Int("window", 0, "Rolling-average window in seconds (0 = config default)")
	stepMs      = flag.Int64("step", 0, "Query step in milliseconds (0 = config default)")
	fromMs      = flag.Int64("from", 0, "Replay start in epoch ms (0 = dataset start)")
	toMs        = flag.Int64("to", 0, "Replay end in epoch ms (0 = dataset end)")
	speedUnits  = flag.String("units", "", "Speed output units: kn, mps, kmph (default from config)")
	boundsOnly  = flag.Bool("bounds", false, "Print the dataset bounding box and exit")
	profile     = flag.Bool("profile", false, "Print query timing summary to stderr on exit")
	glyphOffset = flag.Float64("glyph-offset", 50, "Wind glyph anchor distance from the boat in meters")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: replay [flags] telemetry.csv [more.csv ...]")
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
	step := cfg.GetStepMs()
	if *stepMs > 0 {
		step = *stepMs
	}
	outUnits := cfg.GetSpeedUnits()
	if *speedUnits != "" {
		if !units.IsValid(*speedUnits) {
			fmt.Fprintf(os.Stderr, "unknown units %q (valid: %v)\n", *speedUnits, units.ValidUnits)
			os.Exit(1)
		}
		outUnits = *speedUnits
	}

	ds, err := loadDataset(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *boundsOnly {
		b := telemetry.ComputeBounds(ds.Tracks)
		if b == nil {
			fmt.Fprintln(os.Stderr, "dataset has no samples")
			os.Exit(1)
		}
		fmt.Printf("min_lat,max_lat,min_lon,max_lon\n%.6f,%.6f,%.6f,%.6f\n",
			b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
		return
	}

	start, end := ds.TimeMin, ds.TimeMax
	if *fromMs > 0 {
		start = *fromMs
	}
	if *toMs > 0 {
		end = *toMs
	}

	collector := profiling.NewCollector(cfg.GetProfilingCapacity())
	emitReplay(ds, start, end, step, windowSeconds, outUnits, collector)

	if *profile {
		for _, st := range collector.Summary() {
			fmt.Fprintf(os.Stderr, "%-16s total=%d kept=%d mean=%s max=%s\n",
				st.Op, st.Total, st.Kept, st.Mean, st.Max)
		}
	}
}

// loadDataset ingests every file and merges the results into one dataset.
func loadDataset(paths []string) (telemetry.Dataset, error) {
	logf := monitoring.Prefixed("ingest")
	datasets := make([]telemetry.Dataset, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return telemetry.Dataset{}, fmt.Errorf("reading %s: %w", path, err)
		}
		ds, warnings, err := ingest.Ingest(string(raw))
		if err != nil {
			return telemetry.Dataset{}, fmt.Errorf("ingesting %s: %w", path, err)
		}
		for _, w := range warnings {
			logf("%s: %s", path, w)
		}
		datasets = append(datasets, ds)
	}
	if len(datasets) == 1 {
		return datasets[0], nil
	}
	return telemetry.Merge(datasets...), nil
}

func emitReplay(ds telemetry.Dataset, start, end, step int64, windowSeconds int, outUnits string, collector *profiling.Collector) {
	fmt.Printf("time_ms,time_iso,boat_id,boat_name,lat,lon,sog_%s,avg_sog_%s,cog,twd,awa,twa,glyph_lat,glyph_lon\n",
		outUnits, outUnits)

	for t := start; t <= end; t += step {
		for i := range ds.Tracks {
			track := ds.Tracks[i]

			done := collector.Time("interpolate")
			itp := replay.InterpolateAt(track, t)
			done()
			if itp == nil {
				continue
			}

			done = collector.Time("rolling_avg")
			avg, haveAvg := replay.RollingAverageSpeed(track, t, windowSeconds)
			done()

			s := itp.Sample
			row := []string{
				strconv.FormatInt(t, 10),
				time.UnixMilli(t).UTC().Format(time.RFC3339),
				track.ID,
				track.Name,
				strconv.FormatFloat(s.Lat, 'f', 6, 64),
				strconv.FormatFloat(s.Lon, 'f', 6, 64),
				fmtSpeed(s.SOG, outUnits),
				"",
				fmtOpt(s.COG),
				fmtOpt(s.TWD),
				fmtOpt(s.AWA),
				fmtOpt(s.TWA),
				"", "",
			}
			if haveAvg {
				row[7] = strconv.FormatFloat(units.ConvertSpeed(avg, outUnits), 'f', 2, 64)
			}
			if s.TWD != nil {
				// Anchor for the wind-direction glyph, a fixed offset
				// upwind of the boat.
				glat, glon := geo.DestinationPoint(s.Lat, s.Lon, *s.TWD, *glyphOffset)
				row[12] = strconv.FormatFloat(glat, 'f', 6, 64)
				row[13] = strconv.FormatFloat(glon, 'f', 6, 64)
			}

			fmt.Println(strings.Join(row, ","))
		}
	}
}

func fmtOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func fmtSpeed(v *float64, outUnits string) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(units.ConvertSpeed(*v, outUnits), 'f', 2, 64)
}
