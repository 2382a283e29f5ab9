package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"vtk-polydata/internal/mathutil"
)

// Config holds conversion and preview settings.
type Config struct {
	// Orientation of the VTK files (import reads in it, export writes in it)
	AxisForward string `json:"axis_forward"`
	AxisUp      string `json:"axis_up"`
	ColorLayer  string `json:"color_layer"`

	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Preview settings
	Preview     string  `json:"preview"` // image extension: "webp", "tga", "png" or "" for none
	PreviewSize int     `json:"preview_size"`
	Supersample int     `json:"supersample"`
	FillRatio   float64 `json:"fill_ratio"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Forward    string
	Up         string
	ColorLayer string
	InputDir   string
	OutputDir  string
	Preview    string
	Size       int
	Workers    int
}

// Resolve applies flag overrides, then fills defaults and validates the axes.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Forward != "" {
		c.AxisForward = flags.Forward
	}
	if flags.Up != "" {
		c.AxisUp = flags.Up
	}
	if flags.ColorLayer != "" {
		c.ColorLayer = flags.ColorLayer
	}
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.Size > 0 {
		c.PreviewSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.AxisForward == "" {
		c.AxisForward = string(mathutil.DefaultForward)
	}
	if c.AxisUp == "" {
		c.AxisUp = string(mathutil.DefaultUp)
	}
	if c.OutputDir == "" && c.InputDir != "" {
		c.OutputDir = c.InputDir + "-out"
	}
	if c.Preview == "none" {
		c.Preview = ""
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = 0.9
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	_, err := c.Orientation()
	return err
}

// Orientation parses the configured axes.
func (c *Config) Orientation() (mathutil.Orientation, error) {
	fwd, err := mathutil.ParseAxis(c.AxisForward)
	if err != nil {
		return mathutil.Orientation{}, fmt.Errorf("config: axis_forward: %w", err)
	}
	up, err := mathutil.ParseAxis(c.AxisUp)
	if err != nil {
		return mathutil.Orientation{}, fmt.Errorf("config: axis_up: %w", err)
	}
	o := mathutil.Orientation{Forward: fwd, Up: up}
	if _, err := mathutil.AxisConversion(o, mathutil.DefaultOrientation); err != nil {
		return mathutil.Orientation{}, fmt.Errorf("config: %w", err)
	}
	return o, nil
}
