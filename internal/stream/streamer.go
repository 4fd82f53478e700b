package stream

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/world"
)

// Options configures a Streamer.
type Options struct {
	PollInterval time.Duration // initial population wait; defaults to 25ms
	Logger       *log.Logger
	Observer     world.Observer
	PreviewDir   string
}

// Streamer is the tile world as seen by a host: Activate when the layer is
// attached, OnFrame once per frame, Deactivate when detached. It is driven
// from a single goroutine.
type Streamer struct {
	camera    Camera
	layout    world.Layout
	generator world.Generator
	opts      Options
	logger    *log.Logger

	manager    *world.Manager
	controller *Controller
}

func NewStreamer(camera Camera, generator world.Generator, opts Options) (*Streamer, error) {
	layout := camera.Layout()
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("chunk layout: %w", err)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 25 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "tileworld ", log.LstdFlags|log.Lmicroseconds)
	}
	return &Streamer{
		camera:    camera,
		layout:    layout,
		generator: generator,
		opts:      opts,
		logger:    logger,
	}, nil
}

func (s *Streamer) Layout() world.Layout {
	return s.layout
}

// Activate creates the chunk cache, starts its workers, requests the 3x3
// neighbourhood of start and blocks until all of it has been generated.
func (s *Streamer) Activate(ctx context.Context, start mgl32.Vec2) error {
	if s.manager != nil {
		return fmt.Errorf("streamer already active")
	}
	s.manager = world.NewManager(s.layout, s.generator, world.Options{
		Logger:     s.logger,
		Observer:   s.opts.Observer,
		PreviewDir: s.opts.PreviewDir,
	})
	s.manager.Start()
	s.controller = NewController(s.layout, s.manager)

	began := time.Now()
	coord := s.controller.Begin(start)
	if err := s.manager.WaitGenerated(ctx, s.opts.PollInterval); err != nil {
		s.Deactivate()
		return fmt.Errorf("initial chunk population: %w", err)
	}
	s.logger.Printf("activated at chunk %v: chunk %dx%d tiles, viewport %dx%d, ready in %s",
		coord, s.layout.ChunkWidth, s.layout.ChunkHeight, s.layout.ViewportWidth, s.layout.ViewportHeight, time.Since(began))
	return nil
}

// Deactivate stops both workers, waits for them and drops the cache.
func (s *Streamer) Deactivate() {
	if s.manager == nil {
		return
	}
	s.manager.Stop()
	s.manager = nil
	s.controller = nil
	s.logger.Printf("deactivated")
}

func (s *Streamer) Active() bool {
	return s.manager != nil
}

// Manager exposes the cache of an active streamer, or nil.
func (s *Streamer) Manager() *world.Manager {
	return s.manager
}

// OnFrame advances the controller to pos and returns the read handle for the
// frame. Before Activate the handle reads nothing.
func (s *Streamer) OnFrame(pos mgl32.Vec2) Frame {
	if s.manager == nil {
		return Frame{}
	}
	coord := s.controller.Step(pos)
	return Frame{
		Coord:    coord,
		Chunk:    s.layout.ChunkBounds(coord),
		Viewport: s.camera.ViewportAt(pos),
		layout:   s.layout,
		manager:  s.manager,
	}
}
