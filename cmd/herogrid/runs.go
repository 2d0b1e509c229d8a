package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/herogrid/internal/engine"
	"github.com/san-kum/herogrid/internal/export"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/metrics"
	"github.com/san-kum/herogrid/internal/scenario"
	"github.com/san-kum/herogrid/internal/storage"
	"github.com/san-kum/herogrid/internal/viz"
)

func resolveScenario(arg string) (*scenario.Scenario, error) {
	if sc, ok := scenario.Builtin(arg); ok {
		return sc, nil
	}
	if _, err := os.Stat(arg); err != nil {
		return nil, fmt.Errorf("unknown scenario: %s (built-in: %v)", arg, scenario.Names())
	}
	return scenario.Load(arg)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := resolveScenario(args[0])
	if err != nil {
		return err
	}

	w, h := float64(cfg.Display.Width), float64(cfg.Display.Height)
	if cmd.Flags().Changed("width") {
		w = width
	}
	if cmd.Flags().Changed("height") {
		h = height
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var svg string
	var onFrame func(*engine.Engine, *viz.Scene)
	if snapshot != "" {
		vw, vh := w, h
		if sc.Width > 0 {
			vw = sc.Width
		}
		if sc.Height > 0 {
			vh = sc.Height
		}
		th := viz.GetTheme(cfg.Display.Theme)
		onFrame = func(e *engine.Engine, scene *viz.Scene) {
			if svg != "" || e.Loop().Now().Sub(scenario.Epoch) < snapshotAt {
				return
			}
			sprites := scene.Sprites(e.Tiles(), e.Plan().Config.ItemSize)
			svg = export.SpritesToSVG(sprites, vw, vh, layout.Rect{W: vw, H: vh}, th)
		}
	}

	res, err := scenario.Run(ctx, sc, scenario.Options{
		Settings: cfg.Settings(),
		FPS:      cfg.Display.FPS,
		Width:    w,
		Height:   h,
		Record:   !noSave,
		Metrics:  metrics.Standard(),
		Logger:   stderrLogger(),
		OnFrame:  onFrame,
	})
	if err != nil {
		return err
	}
	if snapshot != "" {
		if svg == "" {
			return fmt.Errorf("scenario ended before %v, no snapshot taken", snapshotAt)
		}
		if err := os.WriteFile(snapshot, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Printf("snapshot: %s\n", snapshot)
	}

	fmt.Printf("scenario: %s\n", res.Scenario)
	fmt.Printf("viewport: %.0fx%.0f\n", res.Width, res.Height)
	fmt.Printf("tiles: %d\n", res.Tiles)
	fmt.Printf("frames: %d of %d refreshes (%.2fs)\n", res.Frames, res.Refreshes, res.Elapsed.Seconds())
	fmt.Printf("phase: %s\n\n", res.Phase)

	names := make([]string, 0, len(res.Metrics))
	for k := range res.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range names {
		fmt.Fprintf(tw, "  %s\t%.4f\n", k, res.Metrics[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Scenario:  res.Scenario,
		Preset:    preset,
		FPS:       res.FPS,
		Frames:    res.Frames,
		Duration:  res.Elapsed.Seconds(),
		Width:     res.Width,
		Height:    res.Height,
		Tiles:     res.Tiles,
		Dispersed: res.Dispersed,
		Metrics:   res.Metrics,
	}, res.Samples)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("\nsaved: %s\n", id)
	return nil
}

func showScenarios(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, n := range scenario.Names() {
			sc, _ := scenario.Builtin(n)
			fmt.Printf("  %-8s %s\n", n, sc.Description)
		}
		return nil
	}
	sc, err := resolveScenario(args[0])
	if err != nil {
		return err
	}
	data, err := sc.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tFRAMES\tTILES\tDISPERSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%d\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Frames,
			run.Tiles,
			run.Dispersed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(samples))

	for _, c := range columns {
		data, err := storage.Column(samples, strings.TrimSpace(c))
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(storage.Columns, ", "))
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("%s vs frame", c)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := resolveScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sw := scenario.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, err := scenario.RunSweep(ctx, sc, sw, scenario.Options{
		Settings: cfg.Settings(),
		FPS:      cfg.Display.FPS,
		Width:    float64(cfg.Display.Width),
		Height:   float64(cfg.Display.Height),
	})
	if err != nil {
		return err
	}
	if _, ok := results[0].Metrics[sweepMetric]; !ok {
		return fmt.Errorf("unknown metric: %s", sweepMetric)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tFRAMES\tDISPERSED\tMEAN\tPEAK\tKINETIC\tCLAMP\n", strings.ToUpper(sw.Param))
	series := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(tw, "%.4f\t%d\t%v\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.Value,
			r.Frames,
			r.Dispersed,
			r.Metrics["mean_displacement"],
			r.Metrics["peak_displacement"],
			r.Metrics["kinetic_energy"],
			r.Metrics["clamp_rate"],
		)
		series = append(series, r.Metrics[sweepMetric])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", sweepMetric, sw.Param)),
		))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if exportFormat == "json" && exportOut != "" {
		return export.ExportJSON(exportOut, *meta, samples)
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "json":
		return export.WriteJSON(out, *meta, samples)
	case "csv":
		return storage.WriteSeries(out, samples)
	case "svg":
		data, err := storage.Column(samples, exportColumn)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, export.SeriesToSVG(data, 800, 300, "#00ccff"))
		return err
	}
	return fmt.Errorf("unknown format: %s (json, csv, svg)", exportFormat)
}
