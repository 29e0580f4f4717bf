// Package display shows replayed frames in an ebiten window.
package display

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sudorandom/urg-viewer/pkg/raster"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	// ErrClosed is returned by Present once the window has gone away.
	ErrClosed = errors.New("display closed")
	// ErrDisplay wraps failures of the ebiten game loop itself.
	ErrDisplay = errors.New("display failure")
)

// QuitKey ends the replay once playback has finished.
const QuitKey = ebiten.KeyEscape

// Window is an ebiten.Game that shows frames handed to Present. Present is
// called from the replay goroutine and blocks until the game loop picks the
// frame up, so playback runs at the configured TPS.
type Window struct {
	Width, Height int

	frames    chan []byte
	lastFrame *raster.Buffer
	lastPix   []byte
	screenImg *ebiten.Image
	monoFace  *text.GoTextFace

	quit      atomic.Bool
	finished  atomic.Bool
	closed    chan struct{}
	closeOnce sync.Once

	captionMu sync.Mutex
	caption   string
}

func NewWindow(width, height int) *Window {
	w := &Window{
		Width:  width,
		Height: height,
		frames: make(chan []byte),
		closed: make(chan struct{}),
	}
	if src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err == nil {
		w.monoFace = &text.GoTextFace{Source: src, Size: 14}
	} else {
		log.Printf("[display] Caption font unavailable: %v", err)
	}
	return w
}

// Present uploads frame on the next tick. Presenting the same buffer again
// reuses its converted pixels.
func (w *Window) Present(frame *raster.Buffer) error {
	if frame.Width != w.Width || frame.Height != w.Height {
		return fmt.Errorf("frame is %dx%d, window is %dx%d", frame.Width, frame.Height, w.Width, w.Height)
	}
	if frame != w.lastFrame {
		w.lastPix = frame.AppendRGBA(make([]byte, 0, len(frame.Pix)*4))
		w.lastFrame = frame
	}
	select {
	case w.frames <- w.lastPix:
		return nil
	case <-w.closed:
		return ErrClosed
	}
}

// QuitKeyHeld reports whether the quit key was down on the last tick. A
// closed window counts as a quit.
func (w *Window) QuitKeyHeld() bool {
	select {
	case <-w.closed:
		return true
	default:
	}
	return w.quit.Load()
}

func (w *Window) SetCaption(caption string) {
	w.captionMu.Lock()
	w.caption = caption
	w.captionMu.Unlock()
}

// Finish makes the game loop exit on its next tick.
func (w *Window) Finish() { w.finished.Store(true) }

// Close releases any goroutine blocked in Present.
func (w *Window) Close() {
	w.closeOnce.Do(func() { close(w.closed) })
}

// Run opens the window and blocks until Finish is called or the user closes
// the window.
func (w *Window) Run(title string, tps int) error {
	defer w.Close()
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplay, err)
	}
	return nil
}

func (w *Window) Update() error {
	w.quit.Store(ebiten.IsKeyPressed(QuitKey))
	if w.finished.Load() {
		return ebiten.Termination
	}
	if w.screenImg == nil {
		w.screenImg = ebiten.NewImage(w.Width, w.Height)
	}
	select {
	case pix := <-w.frames:
		w.screenImg.WritePixels(pix)
	default:
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.screenImg != nil {
		screen.DrawImage(w.screenImg, nil)
	}
	if w.monoFace == nil {
		return
	}
	w.captionMu.Lock()
	caption := w.caption
	w.captionMu.Unlock()
	if caption == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 6)
	op.ColorScale.Scale(0, 0, 0, 0.8)
	text.Draw(screen, caption, w.monoFace, op)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) { return w.Width, w.Height }
