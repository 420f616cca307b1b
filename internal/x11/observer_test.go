// SPDX-License-Identifier: Unlicense OR MIT

package x11

import (
	"image"
	"os"
	"testing"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T) (*xgb.Conn, xproto.Window) {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X11 display")
	}
	conn, err := xgb.NewConn()
	if err != nil {
		t.Skipf("no X11 display: %v", err)
	}
	t.Cleanup(conn.Close)
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	require.NoError(t, err)
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root,
		0, 0, 64, 48, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, 0, nil).Check()
	require.NoError(t, err)
	return conn, win
}

func TestGeometry(t *testing.T) {
	_, win := newTestWindow(t)
	sz, err := Geometry("", uint32(win))
	require.NoError(t, err)
	require.Equal(t, image.Pt(64, 48), sz)
}

func TestObserveResizeAndDestroy(t *testing.T) {
	conn, win := newTestWindow(t)
	o, err := Observe("", uint32(win))
	require.NoError(t, err)
	defer o.Close()

	err = xproto.ConfigureWindowChecked(conn, win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight, []uint32{100, 80}).Check()
	require.NoError(t, err)
	select {
	case sz := <-o.Resizes():
		require.Equal(t, image.Pt(100, 80), sz)
	case <-time.After(5 * time.Second):
		t.Fatal("no resize notification")
	}

	require.NoError(t, xproto.DestroyWindowChecked(conn, win).Check())
	require.Eventually(t, o.Gone, 5*time.Second, 10*time.Millisecond)
}

func TestObserveBadDisplay(t *testing.T) {
	_, err := Observe("invalid-host-gfx:99", 1)
	require.ErrorIs(t, err, ErrNoDisplay)
}
