package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hmd-optics/internal/config"
	"hmd-optics/internal/optics"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	set := flag.String("set", "", "Comma-separated parameter overrides, e.g. focalLength=0.39")
	sliders := flag.Bool("sliders", false, "Also print the UI slider descriptors")

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
	cfg.Resolve(config.Flags{})

	params := cfg.Parameters()
	if *set != "" {
		for _, pair := range strings.Split(*set, ",") {
			name, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: bad -set entry %q\n", pair)
				os.Exit(1)
			}
			p, err := optics.ParseParam(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: bad value %q: %v\n", val, err)
				os.Exit(1)
			}
			if err := params.Set(p, v); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	}

	d := optics.Compute(params, cfg.FarMargin)

	fmt.Println("HMD optical state")
	fmt.Println("------------------------------------------------------------")
	for _, disp := range optics.Displays(params, d) {
		fmt.Printf("  %-28s %12.6g\n", disp.Name, disp.Value)
	}
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("  left eye bounds   [%.6g, %.6g]\n", d.LeftEye.Left, d.LeftEye.Right)
	fmt.Printf("  right eye bounds  [%.6g, %.6g]\n", d.RightEye.Left, d.RightEye.Right)
	fmt.Printf("  top/bottom        [%.6g, %.6g]\n", d.Bottom, d.Top)

	if d.Degenerate {
		fmt.Println("  ! focal length equals lens-to-display distance:")
		fmt.Println("    magnification is unbounded, frustums are not renderable")
	}

	if *sliders {
		fmt.Println()
		fmt.Println("Slider descriptors")
		fmt.Println("------------------------------------------------------------")
		for _, s := range optics.SliderSpecs() {
			fmt.Printf("  %-28s min=%-8g max=%-8g step=%g\n", s.Name, s.Min, s.Max, s.Step)
		}
	}
}
