package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// SnapshotSource supplies settled snapshots. *game.Engine satisfies it.
type SnapshotSource interface {
	SnapshotInto(dst *game.GameSnapshot)
}

// FrameDumper periodically renders the latest snapshot to a PNG file.
// It is the headless stand-in for a window.
type FrameDumper struct {
	source   SnapshotSource
	renderer *Renderer
	dir      string
	every    time.Duration
	keep     int

	snap    game.GameSnapshot
	written int
	onFrame func(time.Duration)
}

// NewFrameDumper writes frames into dir every interval, cycling through
// keep file names.
func NewFrameDumper(source SnapshotSource, renderer *Renderer, dir string, every time.Duration, keep int) *FrameDumper {
	if keep < 1 {
		keep = 1
	}
	return &FrameDumper{
		source:   source,
		renderer: renderer,
		dir:      dir,
		every:    every,
		keep:     keep,
	}
}

// OnFrame registers a hook receiving the render time of each frame.
func (d *FrameDumper) OnFrame(fn func(time.Duration)) {
	d.onFrame = fn
}

// Run dumps frames until ctx is cancelled.
func (d *FrameDumper) Run(ctx context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create frame dir: %w", err)
	}

	ticker := time.NewTicker(d.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := d.DumpOnce(); err != nil {
				log.Printf("⚠️ Frame dump failed: %v", err)
			}
		}
	}
}

// DumpOnce renders the latest snapshot and writes it. Returns the file path.
func (d *FrameDumper) DumpOnce() (string, error) {
	start := time.Now()
	d.source.SnapshotInto(&d.snap)
	d.renderer.Render(&d.snap)
	if d.onFrame != nil {
		d.onFrame(time.Since(start))
	}

	path := filepath.Join(d.dir, fmt.Sprintf("frame-%03d.png", d.written%d.keep))
	if err := d.renderer.SavePNG(path); err != nil {
		return "", err
	}
	d.written++
	return path, nil
}
