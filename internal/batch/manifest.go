package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry is the per-frame record written next to a rendered
// sequence so downstream tooling can map files back to simulation state.
type ManifestEntry struct {
	Index      int     `json:"index"`
	Path       string  `json:"path"`
	Degenerate bool    `json:"degenerate,omitempty"`
	PositionX  float64 `json:"position_x"`
	FocalLen   float64 `json:"focal_length"`
	IPD        float64 `json:"ipd"`
}

// WriteManifest records the rendered frames as JSON.
func WriteManifest(path string, frames []Frame, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for i, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Index:      r.Index,
			Path:       r.Path,
			Degenerate: r.Degenerate,
			PositionX:  frames[i].Position[0],
			FocalLen:   frames[i].Params.FocalLength,
			IPD:        frames[i].Params.IPD,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
