package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hmd-optics/internal/batch"
	"hmd-optics/internal/config"
	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/optics"
	"hmd-optics/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	frames := flag.Int("frames", 120, "Number of frames to render")
	amplitude := flag.Float64("amplitude", 0.5, "Lateral oscillation amplitude (0 disables)")
	periods := flag.Float64("periods", 2, "Oscillation periods over the whole sequence")
	sweep := flag.String("sweep", "", "Linear parameter sweep, e.g. focalLength=0.25:0.55")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	size := flag.Int("size", 0, "Frame size in pixels (default: 512)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	format := flag.String("format", "", "Output format: webp or tga (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		RenderSize:  *size,
		Supersample: *supersample,
		Format:      *format,
		Workers:     *workers,
	})

	if *frames <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -frames must be positive")
		os.Exit(1)
	}

	frameSpecs, err := buildFrames(cfg, *frames, *amplitude, *periods, *sweep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := scene.DefaultOptions()
	opts.Size = cfg.RenderSize
	opts.Supersample = cfg.Supersample

	fmt.Printf("HMD optics animation → %s\n", cfg.Format)
	fmt.Printf("Frames: %d, Workers: %d\n", len(frameSpecs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Workers:   cfg.Workers,
		FarMargin: cfg.FarMargin,
		Scene:     opts,
	}, frameSpecs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, degenerate := 0, 0
	var failed []batch.Result
	for _, r := range results {
		switch {
		case r.Success && r.Degenerate:
			success++
			degenerate++
		case r.Success:
			success++
		default:
			failed = append(failed, r)
		}
	}
	fmt.Printf("Rendered: %d/%d", success, len(frameSpecs))
	if degenerate > 0 {
		fmt.Printf(" (%d at the singularity, frustums blank)", degenerate)
	}
	fmt.Println()

	for _, r := range failed {
		fmt.Printf("  frame %d: %s\n", r.Index, r.Error)
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, frameSpecs, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}

// buildFrames expands the oscillation and sweep settings into concrete
// per-frame parameter sets and poses.
func buildFrames(cfg config.Config, n int, amplitude, periods float64, sweep string) ([]batch.Frame, error) {
	var sweepParam optics.Param
	var sweepFrom, sweepTo float64
	haveSweep := sweep != ""
	if haveSweep {
		var err error
		sweepParam, sweepFrom, sweepTo, err = parseSweep(sweep)
		if err != nil {
			return nil, err
		}
	}

	base := cfg.Parameters()
	frames := make([]batch.Frame, n)
	for i := range frames {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}

		params := base
		if haveSweep {
			v := sweepFrom + (sweepTo-sweepFrom)*t
			if err := params.Set(sweepParam, v); err != nil {
				return nil, fmt.Errorf("sweep frame %d: %w", i, err)
			}
		}

		frames[i] = batch.Frame{
			Index:    i,
			Params:   params,
			Position: mathutil.Vec3{amplitude * math.Sin(2*math.Pi*periods*t), 0, 0},
		}
	}
	return frames, nil
}

// parseSweep reads "name=from:to".
func parseSweep(s string) (optics.Param, float64, float64, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, 0, fmt.Errorf("bad -sweep %q, want name=from:to", s)
	}
	p, err := optics.ParseParam(strings.TrimSpace(name))
	if err != nil {
		return 0, 0, 0, err
	}
	fromStr, toStr, ok := strings.Cut(rng, ":")
	if !ok {
		return 0, 0, 0, fmt.Errorf("bad -sweep range %q, want from:to", rng)
	}
	from, err := strconv.ParseFloat(strings.TrimSpace(fromStr), 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad -sweep start: %v", err)
	}
	to, err := strconv.ParseFloat(strings.TrimSpace(toStr), 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad -sweep end: %v", err)
	}
	return p, from, to, nil
}
