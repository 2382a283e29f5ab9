package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one converted file in the output manifest.
type ManifestEntry struct {
	File     string `json:"file"`
	Mesh     string `json:"mesh"`
	Vertices int    `json:"vertices"`
	Faces    int    `json:"faces"`
	Output   string `json:"output"`
	Preview  string `json:"preview,omitempty"`
	Partial  string `json:"partial,omitempty"`
}

// WriteManifest writes the successful results as JSON. Output and preview
// paths are stored relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	base := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		e := ManifestEntry{
			File:     filepath.ToSlash(r.File),
			Mesh:     r.Mesh,
			Vertices: r.Vertices,
			Faces:    r.Faces,
			Output:   relSlash(base, r.Output),
			Partial:  r.Partial,
		}
		if r.Preview != "" {
			e.Preview = relSlash(base, r.Preview)
		}
		entries = append(entries, e)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func relSlash(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
