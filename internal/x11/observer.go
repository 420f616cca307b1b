// SPDX-License-Identifier: Unlicense OR MIT

// Package x11 observes X11 windows over a separate protocol connection.
// It reports size changes and the destruction of a window without
// interfering with the event loop of the connection that owns it.
package x11

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Observer watches a single window.
type Observer struct {
	conn *xgb.Conn
	win  xproto.Window

	resizes chan image.Point

	mu     sync.Mutex
	gone   bool
	closed bool
	done   chan struct{}
}

// ErrNoDisplay is returned when the X server cannot be reached.
var ErrNoDisplay = errors.New("x11: cannot connect to display")

// Observe connects to display, or $DISPLAY if empty, and subscribes to
// structure events of win.
func Observe(display string, win uint32) (*Observer, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	w := xproto.Window(win)
	err = xproto.ChangeWindowAttributesChecked(conn, w, xproto.CwEventMask,
		[]uint32{xproto.EventMaskStructureNotify}).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: selecting events on window %#x: %v", win, err)
	}
	o := &Observer{
		conn:    conn,
		win:     w,
		resizes: make(chan image.Point, 1),
		done:    make(chan struct{}),
	}
	go o.run()
	return o, nil
}

// Geometry returns the current size of a window.
func Geometry(display string, win uint32) (image.Point, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return image.Point{}, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	defer conn.Close()
	return geometry(conn, xproto.Window(win))
}

func geometry(conn *xgb.Conn, win xproto.Window) (image.Point, error) {
	g, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Point{}, fmt.Errorf("x11: GetGeometry(%#x): %v", uint32(win), err)
	}
	return image.Pt(int(g.Width), int(g.Height)), nil
}

// Size returns the current size of the observed window.
func (o *Observer) Size() (image.Point, error) {
	return geometry(o.conn, o.win)
}

// Resizes returns a channel that receives the latest window size after
// every change. Intermediate sizes are dropped if the receiver falls
// behind. The channel is closed when the window is destroyed or the
// observer is closed.
func (o *Observer) Resizes() <-chan image.Point {
	return o.resizes
}

// Gone reports whether the window was destroyed or the connection to the
// X server failed.
func (o *Observer) Gone() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gone
}

// Close stops observing and waits for the event goroutine to exit.
func (o *Observer) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()
	o.conn.Close()
	<-o.done
}

func (o *Observer) run() {
	defer close(o.done)
	defer close(o.resizes)
	last := image.Point{-1, -1}
	for {
		ev, xerr := o.conn.WaitForEvent()
		switch {
		case ev == nil && xerr == nil:
			// Connection closed.
			o.mu.Lock()
			if !o.closed {
				o.gone = true
			}
			o.mu.Unlock()
			return
		case xerr != nil:
			continue
		}
		switch ev := ev.(type) {
		case xproto.ConfigureNotifyEvent:
			if ev.Window != o.win {
				continue
			}
			sz := image.Pt(int(ev.Width), int(ev.Height))
			if sz == last {
				continue
			}
			last = sz
			o.send(sz)
		case xproto.DestroyNotifyEvent:
			if ev.Window != o.win {
				continue
			}
			o.mu.Lock()
			o.gone = true
			o.mu.Unlock()
			return
		}
	}
}

// send delivers sz, replacing an undelivered older size.
func (o *Observer) send(sz image.Point) {
	for {
		select {
		case o.resizes <- sz:
			return
		default:
		}
		select {
		case <-o.resizes:
		default:
		}
	}
}
