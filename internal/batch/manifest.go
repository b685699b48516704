package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Triangles int    `json:"triangles"`
	Pixels    int    `json:"pixels"`
	Error     string `json:"error,omitempty"`
}

// WriteManifest writes the results as a JSON array to path. Failed jobs are
// listed with their error and without an image.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:      r.Name,
			Triangles: r.Stats.Triangles,
			Pixels:    r.Stats.Pixels,
		}
		if r.Success {
			e.Image = r.Image
			e.Thumbnail = r.Thumbnail
			e.Width = r.Width
			e.Height = r.Height
		} else {
			e.Error = r.Error
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return nil
}

// Failed counts the unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
