package scanview

import (
	"math"

	"github.com/sudorandom/urg-viewer/pkg/raster"
	"github.com/sudorandom/urg-viewer/pkg/urglog"
)

// Scene holds the pre-rendered background and projects scans on top of it.
type Scene struct {
	cfg              Config
	originX, originY int
	background       *raster.Buffer
}

func NewScene(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		cfg:     cfg,
		originX: cfg.Width / 2,
		originY: cfg.Height / 2,
	}
	s.generateBackground()
	return s, nil
}

func (s *Scene) generateBackground() {
	bg := raster.NewBuffer(s.cfg.Width, s.cfg.Height)
	bg.Fill(s.cfg.Background)
	bg.HLine(s.originY, s.cfg.Axis)
	bg.VLine(s.originX, s.cfg.Axis)
	raster.StrokeCircle(bg, s.originX, s.originY, int(math.Round(s.cfg.RingRadius/s.cfg.CellSize)), s.cfg.Axis)
	s.background = bg
}

// Background returns the static background. Callers must not modify it.
func (s *Scene) Background() *raster.Buffer { return s.background }

func (s *Scene) Origin() (x, y int) { return s.originX, s.originY }

// Project converts the i-th range sample of a scan starting at startAngle
// (degrees) into pixel coordinates. ok is false for no-echo samples.
func (s *Scene) Project(i int, rangeMM int64, startAngle float64) (px, py int, ok bool) {
	if rangeMM >= s.cfg.NoEcho {
		return 0, 0, false
	}
	theta := (s.cfg.AngularStep*float64(i) + startAngle) * math.Pi / 180
	dist := float64(rangeMM) / 1000
	x, y := dist*math.Cos(theta), dist*math.Sin(theta)
	px = int(math.Round(x/s.cfg.CellSize)) + s.originX
	py = int(math.Round(-y/s.cfg.CellSize)) + s.originY
	return px, py, true
}

// Render returns a fresh frame: a copy of the background with the scan's
// range samples plotted on it.
func (s *Scene) Render(scan urglog.Scan) *raster.Buffer {
	frame := s.background.Clone()
	s.plot(frame, scan)
	return frame
}

// RenderInto resets dst to the background and plots scan on it. dst must
// have the scene's dimensions.
func (s *Scene) RenderInto(dst *raster.Buffer, scan urglog.Scan) {
	dst.CopyFrom(s.background)
	s.plot(dst, scan)
}

func (s *Scene) plot(dst *raster.Buffer, scan urglog.Scan) {
	for i, r := range scan.Ranges {
		px, py, ok := s.Project(i, r, scan.StartAngle)
		if !ok {
			continue
		}
		raster.FillCircle(dst, px, py, s.cfg.MarkerRadius, s.cfg.Marker)
	}
}
