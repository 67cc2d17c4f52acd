// Package batch renders frame sequences in parallel: each frame gets its
// own rig so workers never share mutable state.
package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"hmd-optics/internal/frustum"
	"hmd-optics/internal/hmd"
	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/optics"
	"hmd-optics/internal/postprocess"
	"hmd-optics/internal/scene"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    string // "webp" or "tga"
	Workers   int
	FarMargin float64
	Scene     scene.Options
}

// Frame describes one frame of the sequence: a full parameter set plus a
// headset pose. Sweeps and oscillations are expressed by the caller as a
// series of these.
type Frame struct {
	Index    int
	Params   optics.Parameters
	Position mathutil.Vec3
	YawDeg   float64
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index      int
	Path       string
	Degenerate bool
	Success    bool
	Error      string
}

// Run renders all frames using a worker pool and reports progress on
// stdout every two seconds.
func Run(cfg Config, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = renderFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func renderFrame(cfg Config, f Frame) Result {
	rig := hmd.New(f.Params, cfg.FarMargin)
	rig.SetPosition(f.Position)
	if f.YawDeg != 0 {
		rig.SetYaw(f.YawDeg)
	}

	left := frustum.NewLineMesh()
	right := frustum.NewLineMesh()
	for eye, lm := range map[hmd.Eye]*frustum.LineMesh{hmd.Left: left, hmd.Right: right} {
		proj, err := rig.Projection(eye)
		if err != nil {
			// Degenerate optics: the frame still renders, without frustums.
			continue
		}
		if err := lm.Update(proj, rig.Pose(eye).View()); err != nil {
			return Result{Index: f.Index, Error: err.Error()}
		}
	}

	img := scene.Render(rig, left, right, cfg.Scene)
	if cfg.Scene.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Scene.Size)
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%04d.%s", f.Index, cfg.Format))
	if err := EncodeFile(outPath, img, cfg.Format); err != nil {
		return Result{Index: f.Index, Error: err.Error()}
	}

	return Result{
		Index:      f.Index,
		Path:       outPath,
		Degenerate: rig.Derived().Degenerate,
		Success:    true,
	}
}

// EncodeFile writes an image in the requested format, creating parent
// directories as needed.
func EncodeFile(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "webp":
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("batch: WebP encode %s: %w", path, err)
		}
	case "tga":
		if err := tga.Encode(f, img); err != nil {
			return fmt.Errorf("batch: TGA encode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("batch: unknown output format %q", format)
	}
	return nil
}
