package scanview

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/sudorandom/urg-viewer/pkg/raster"
)

// CaptureSink writes every newly presented frame to Dir as a PNG. Presenting
// the same frame again does not write a new file. It reports the quit key as
// held, so a replay against it alone ends after the last scan.
type CaptureSink struct {
	Dir string

	frames int
	last   *raster.Buffer
}

func NewCaptureSink(dir string) (*CaptureSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating capture directory: %w", err)
	}
	return &CaptureSink{Dir: dir}, nil
}

func (c *CaptureSink) Present(frame *raster.Buffer) error {
	if frame == c.last {
		return nil
	}
	c.last = frame

	path := filepath.Join(c.Dir, fmt.Sprintf("frame-%05d.png", c.frames))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame.RGBA()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.frames++
	if c.frames%100 == 0 {
		log.Printf("[capture] Captured %d frames to %s", c.frames, c.Dir)
	}
	return nil
}

func (c *CaptureSink) QuitKeyHeld() bool { return true }

// Frames returns the number of PNG files written.
func (c *CaptureSink) Frames() int { return c.frames }
