package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/f13rce/mapip/ascii"
	"github.com/f13rce/mapip/geo"
)

// borderOverhead is the number of terminal columns reserved around the map
// content, carried over from the upstream panel layout.
const borderOverhead = 4

// headerOverhead is the vertical space the aspect calculation subtracts for
// the header and layout margins.
const headerOverhead = 5

// Options configures the render loop. The caller validates RefreshRate > 0
// before constructing a Loop.
type Options struct {
	RefreshRate   float64 // frames per second
	AspectFactor  float64 // character height/width compensation
	LatCorrection float64 // vertical projection stretch for the map asset
	FineRamp      bool    // 70-level ramp instead of 9
	MarkOcean     bool    // draw ocean cells as dim dots
	MapPath       string  // map image, re-read on every resize
	Fallback      *ascii.Bitmap
	CheckInterval time.Duration // address poll interval, shown in the header
	Backoff       time.Duration // delay after a recoverable failure
	Logger        *log.Logger
}

// Loop owns every piece of render state the ticks share: the base glyph
// grid, the marker-overlaid copy, the last terminal size, the last flushed
// frame and the current location. A single goroutine runs it; the only
// outside input is the poller's single-slot update channel.
type Loop struct {
	tui     *TUI
	updates <-chan geo.Location
	opts    Options

	loc            geo.Location
	lastW, lastH   int
	grid           []string // base grid, rebuilt on resize
	mapCols        int      // rendered map columns, before padding
	marked         []string // grid with the marker overlaid
	markerRow      int
	markerCol      int
	lastFrame      string
	forced         bool
	flushes        int
	fallbackWarned bool
}

// NewLoop builds a loop around an already-resolved startup location. The
// first tick renders unconditionally.
func NewLoop(t *TUI, updates <-chan geo.Location, initial geo.Location, opts Options) *Loop {
	if opts.Backoff <= 0 {
		opts.Backoff = 5 * time.Second
	}
	return &Loop{
		tui:     t,
		updates: updates,
		opts:    opts,
		loc:     initial,
		lastW:   -1,
		lastH:   -1,
		forced:  true,
	}
}

// Run ticks at the configured frame rate until the context is cancelled or
// the user quits. Recoverable failures are logged and retried after the
// backoff delay; nothing here terminates the process.
func (l *Loop) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / l.opts.RefreshRate)

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.tui.Quit():
			return
		default:
		}

		delay := interval
		if err := l.tick(); err != nil {
			l.logf("render: %v", err)
			delay = l.opts.Backoff
		}

		select {
		case <-ctx.Done():
			return
		case <-l.tui.Quit():
			return
		case <-time.After(delay):
		}
	}
}

// tick reconciles the three independent signals (poll result, terminal
// size, elapsed time) into at most one flushed frame.
func (l *Loop) tick() error {
	// Newest poll result, if any. Never blocks.
	select {
	case loc := <-l.updates:
		if loc != l.loc {
			l.logf("location changed: %s", loc)
			l.loc = loc
			l.forced = true
		}
	default:
	}

	width, height := l.tui.Size()
	if width != l.lastW || height != l.lastH {
		if err := l.rebuild(width, height); err != nil {
			// Size stays stale so the next tick retries the rebuild.
			return err
		}
		l.lastW, l.lastH = width, height
		l.forced = true
	}

	if l.forced || l.marked == nil {
		l.overlayMarker()
	}

	frame := l.compose()
	text := frame.String()
	if l.forced || text != l.lastFrame {
		l.tui.Draw(frame, l.opts.MarkOcean)
		l.lastFrame = text
		l.forced = false
		l.flushes++
	}
	return nil
}

// rebuild rasterizes the map asset for the new terminal geometry and
// normalizes every row to the effective content width.
func (l *Loop) rebuild(width, height int) error {
	effective := width - borderOverhead
	if effective < 1 || height <= headerOverhead {
		return fmt.Errorf("terminal %dx%d too small for the map", width, height)
	}

	// Aspect compensation from the current geometry: terminal cells are
	// roughly twice as tall as wide, AspectFactor corrects the mapping.
	aspect := float64(height-headerOverhead) / float64(effective) * l.opts.AspectFactor

	bitmap, err := l.loadBitmap()
	if err != nil {
		return err
	}

	// A terminal wider than the source image gets the full-width map
	// padded on the right instead of a rasterizer failure.
	cols := effective
	if cols > bitmap.W {
		cols = bitmap.W
	}

	grid, err := ascii.Render(bitmap, cols, aspect, l.opts.FineRamp)
	if err != nil {
		return fmt.Errorf("rasterize %dx%d source to %d columns: %w", bitmap.W, bitmap.H, cols, err)
	}
	for i := range grid {
		grid[i] = ascii.NormalizeLine(grid[i], effective)
	}
	l.grid = grid
	l.mapCols = cols
	return nil
}

// loadBitmap reads the configured map image, falling back to the built-in
// asset when the file is unreadable. The image is re-read on every resize;
// it is never touched on the per-frame path.
func (l *Loop) loadBitmap() (*ascii.Bitmap, error) {
	if l.opts.MapPath != "" {
		bitmap, err := ascii.LoadBitmap(l.opts.MapPath)
		if err == nil {
			return bitmap, nil
		}
		if l.opts.Fallback == nil {
			return nil, err
		}
		if !l.fallbackWarned {
			l.logf("map asset unavailable, using built-in map: %v", err)
			l.fallbackWarned = true
		}
	}
	if l.opts.Fallback == nil {
		return nil, fmt.Errorf("no map asset configured")
	}
	return l.opts.Fallback, nil
}

// overlayMarker copies the base grid and stamps the marker glyph at the
// projected cell, keeping the affected row at its exact display width.
func (l *Loop) overlayMarker() {
	l.marked = append([]string(nil), l.grid...)
	l.markerRow, l.markerCol = -1, -1
	if len(l.marked) == 0 || l.mapCols == 0 {
		return
	}

	// Project against the rendered map area, not the padded row width.
	row, col := geo.Project(l.loc.Lat, l.loc.Lon, len(l.marked), l.mapCols, l.opts.LatCorrection)

	runes := []rune(l.marked[row])
	if col < len(runes) {
		runes[col] = MarkerGlyph
		l.marked[row] = ascii.NormalizeLine(string(runes), ascii.StringWidth(l.marked[row]))
		l.markerRow, l.markerCol = row, col
	}
}

// compose builds the comparable frame for this tick.
func (l *Loop) compose() Frame {
	return Frame{
		IP:        l.loc.IP,
		Place:     fmt.Sprintf("%s, %s, %s", l.loc.City, l.loc.Region, l.loc.Country),
		Interval:  fmt.Sprintf("%.0f seconds", l.opts.CheckInterval.Seconds()),
		Rows:      l.marked,
		MarkerRow: l.markerRow,
		MarkerCol: l.markerCol,
	}
}

func (l *Loop) logf(format string, v ...interface{}) {
	if l.opts.Logger != nil {
		l.opts.Logger.Printf(format, v...)
	}
}
