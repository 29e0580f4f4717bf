// Package scanview renders scan records into pixel frames and replays them
// against a display sink.
package scanview

import (
	"errors"

	"github.com/sudorandom/urg-viewer/pkg/raster"
)

// Config describes the fixed geometry and palette of a replay.
type Config struct {
	Width, Height int

	// CellSize is the number of meters covered by one pixel.
	CellSize float64
	// RingRadius is the radius in meters of the reference ring around the origin.
	RingRadius float64
	// AngularStep is the angle in degrees between consecutive range samples.
	// It is applied instead of the per-record step angle.
	AngularStep float64
	// NoEcho is the range in millimeters at and above which a sample is treated
	// as having no return.
	NoEcho int64

	MarkerRadius int
	Background   uint32
	Axis         uint32
	Marker       uint32
}

func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       800,
		CellSize:     0.05,
		RingRadius:   0.5,
		AngularStep:  0.25,
		NoEcho:       35000,
		MarkerRadius: 1,
		Background:   raster.Pack(125, 125, 125),
		Axis:         raster.HSVToARGB(0, 0, 0),
		Marker:       raster.HSVToARGB(100, 1, 1),
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("image dimensions must be positive")
	}
	if c.CellSize <= 0 {
		return errors.New("cell size must be positive")
	}
	return nil
}
