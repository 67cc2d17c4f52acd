package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hmd-optics/internal/batch"
	"hmd-optics/internal/config"
	"hmd-optics/internal/frustum"
	"hmd-optics/internal/hmd"
	"hmd-optics/internal/postprocess"
	"hmd-optics/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	out := flag.String("out", "hmd.webp", "Output image path")
	size := flag.Int("size", 0, "Output image size in pixels (default: 512)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	format := flag.String("format", "", "Output format: webp or tga (default: webp)")
	set := flag.String("set", "", "Comma-separated parameter overrides, e.g. focalLength=0.5,ipd=0.7")
	yaw := flag.Float64("yaw", 0, "Headset yaw in degrees")
	orbitYaw := flag.Float64("orbit-yaw", 35, "Observer orbit yaw in degrees")
	orbitPitch := flag.Float64("orbit-pitch", 20, "Observer orbit pitch in degrees")
	hideFrustums := flag.Bool("hide-frustums", false, "Do not draw the eye frustums")

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
		RenderSize:  *size,
		Supersample: *supersample,
		Format:      *format,
	})

	rig := hmd.New(cfg.Parameters(), cfg.FarMargin)
	if err := applyOverrides(rig, *set); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *yaw != 0 {
		rig.SetYaw(*yaw)
	}

	left, right := frustum.NewLineMesh(), frustum.NewLineMesh()
	left.Visible = !*hideFrustums
	right.Visible = !*hideFrustums
	updateMeshes(rig, left, right)

	if rig.Derived().Degenerate {
		fmt.Println("Note: optics are at the thin-lens singularity; frustums are not drawn.")
	}

	opts := scene.DefaultOptions()
	opts.Size = cfg.RenderSize
	opts.Supersample = cfg.Supersample
	opts.OrbitYawDeg = *orbitYaw
	opts.OrbitPitDeg = *orbitPitch

	img := scene.Render(rig, left, right, opts)
	if opts.Supersample > 1 {
		img = postprocess.Downsample(img, opts.Size)
	}

	if err := batch.EncodeFile(*out, img, cfg.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	d := rig.Derived()
	fmt.Printf("Rendered %s (%dx%d)\n", *out, opts.Size, opts.Size)
	fmt.Printf("magnification=%.3f near=%.3f far=%.3f fovH=%.1f° fovV=%.1f°\n",
		d.Magnification, d.Near, d.Far, d.FOVHorizontalDeg, d.FOVVerticalDeg)
}

// applyOverrides parses "name=value,name=value" pairs and applies them
// through the rig's validated setter.
func applyOverrides(rig *hmd.HMD, set string) error {
	if set == "" {
		return nil
	}
	for _, pair := range strings.Split(set, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return fmt.Errorf("bad -set entry %q, want name=value", pair)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("bad value in -set entry %q: %v", pair, err)
		}
		if err := rig.SetNamedParameter(name, v); err != nil {
			return err
		}
	}
	return nil
}

func updateMeshes(rig *hmd.HMD, left, right *frustum.LineMesh) {
	for eye, lm := range map[hmd.Eye]*frustum.LineMesh{hmd.Left: left, hmd.Right: right} {
		proj, err := rig.Projection(eye)
		if err != nil {
			continue
		}
		if err := lm.Update(proj, rig.Pose(eye).View()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: frustum reconstruction: %v\n", err)
		}
	}
}
