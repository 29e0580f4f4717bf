package scanview

import (
	"errors"
	"fmt"
	"log"

	"github.com/sudorandom/urg-viewer/pkg/raster"
	"github.com/sudorandom/urg-viewer/pkg/urglog"
)

var ErrPresent = errors.New("failed to present frame")

// Sink displays finished frames. Present may block to pace playback.
type Sink interface {
	Present(frame *raster.Buffer) error
	QuitKeyHeld() bool
}

// Captioner is implemented by sinks that can show a text caption next to
// the frame. SetCaption is called before each Present of a new frame.
type Captioner interface {
	SetCaption(caption string)
}

// Player replays scans in log order.
type Player struct {
	scene *Scene
	scans []urglog.Scan
}

func NewPlayer(scene *Scene, scans []urglog.Scan) *Player {
	return &Player{scene: scene, scans: scans}
}

// Run presents one frame per scan, then keeps presenting the last frame
// until the sink reports the quit key.
func (p *Player) Run(sink Sink) error {
	captioner, _ := sink.(Captioner)
	frame := p.scene.Background()
	for i, scan := range p.scans {
		frame = p.scene.Render(scan)
		if captioner != nil {
			captioner.SetCaption(fmt.Sprintf("%s t=%d frame %d/%d", scan.Kind, scan.Timestamp, i+1, len(p.scans)))
		}
		if err := sink.Present(frame); err != nil {
			return fmt.Errorf("%w %d: %w", ErrPresent, i, err)
		}
	}
	log.Printf("[replay] Played %d frames, holding last frame", len(p.scans))

	for !sink.QuitKeyHeld() {
		if err := sink.Present(frame); err != nil {
			return fmt.Errorf("%w %d: %w", ErrPresent, len(p.scans), err)
		}
	}
	return nil
}

// Tee presents every frame to all sinks. The quit key is read from the
// first sink only.
func Tee(primary Sink, others ...Sink) Sink {
	return &tee{sinks: append([]Sink{primary}, others...)}
}

type tee struct {
	sinks []Sink
}

func (t *tee) Present(frame *raster.Buffer) error {
	for _, s := range t.sinks {
		if err := s.Present(frame); err != nil {
			return err
		}
	}
	return nil
}

func (t *tee) QuitKeyHeld() bool { return t.sinks[0].QuitKeyHeld() }

func (t *tee) SetCaption(caption string) {
	for _, s := range t.sinks {
		if c, ok := s.(Captioner); ok {
			c.SetCaption(caption)
		}
	}
}
