package main

import (
	"fmt"
	"strconv"

	"github.com/zparsgo/zparsgo/codec"
)

// presetByName maps the CLI --level flag to one of the named L0-L5
// presets from spec.md §6.
func presetByName(name string) (codec.CompressionOptions, error) {
	n, err := strconv.Atoi(name)
	if err != nil {
		return codec.CompressionOptions{}, fmt.Errorf("invalid --level %q: %w", name, err)
	}
	if n < 0 || n > 5 {
		return codec.CompressionOptions{}, fmt.Errorf("--level must be 0..5, got %d", n)
	}
	return codec.Preset(codec.PresetLevel(n)), nil
}
