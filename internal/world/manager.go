package world

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// ErrStopped is returned by waits on a manager that has been stopped.
var ErrStopped = errors.New("chunk manager stopped")

// Generator derives the content of a chunk. Implementations must be pure
// functions of their inputs and safe to call from any goroutine.
type Generator interface {
	Generate(coord ChunkCoord, bounds Rect) *Chunk
}

// EventKind names a chunk lifecycle transition.
type EventKind string

const (
	EventGenerateRequested EventKind = "generate_requested"
	EventEvictRequested    EventKind = "evict_requested"
	EventGenerated         EventKind = "generated"
	EventEvicted           EventKind = "evicted"
	EventDiscarded         EventKind = "discarded"
)

// Event describes one lifecycle transition. Took and Trees are only set for
// generated chunks.
type Event struct {
	Kind  EventKind
	Chunk ChunkCoord
	Took  time.Duration
	Trees int
}

// Observer receives lifecycle events. It is never called with the
// coordination lock held.
type Observer interface {
	ChunkEvent(Event)
}

type Options struct {
	Logger     *log.Logger
	Observer   Observer
	PreviewDir string // empty disables previews
}

// saveChunkPreview is swapped out by tests.
var saveChunkPreview = SaveChunkPreview

// Manager owns the resident chunk cache and the two background workers that
// fill and drain it. A single coordination lock guards the stop flag, both
// pending sets and the chunk map; each pending set has its own condition
// variable on that lock.
type Manager struct {
	layout     Layout
	generator  Generator
	logger     *log.Logger
	observer   Observer
	previewDir string

	mu           deadlock.Mutex
	generateCond *sync.Cond
	evictCond    *sync.Cond
	started      bool
	stopped      bool
	toGenerate   pendingSet
	toEvict      pendingSet
	chunks       map[ChunkCoord]*Chunk

	wg sync.WaitGroup
}

func NewManager(layout Layout, generator Generator, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "chunk-cache ", log.LstdFlags|log.Lmicroseconds)
	}
	m := &Manager{
		layout:     layout,
		generator:  generator,
		logger:     logger,
		observer:   opts.Observer,
		previewDir: opts.PreviewDir,
		chunks:     make(map[ChunkCoord]*Chunk),
	}
	m.generateCond = sync.NewCond(&m.mu)
	m.evictCond = sync.NewCond(&m.mu)
	return m
}

func (m *Manager) Layout() Layout {
	return m.layout
}

// Start launches the generation and eviction workers. It is a no-op on a
// manager that is already running or stopped.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.stopped {
		return
	}
	m.started = true
	m.wg.Add(2)
	go m.runGeneration()
	go m.runEviction()
}

// Stop raises the stop flag, wakes both workers and waits for them to exit.
// Pending work is abandoned; a chunk being derived when Stop is called is
// discarded once the derivation returns.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.generateCond.Broadcast()
	m.evictCond.Broadcast()
	m.mu.Unlock()

	m.wg.Wait()
}

// RequestGeneration queues a chunk for derivation. Requests for a chunk that
// is already pending are absorbed.
func (m *Manager) RequestGeneration(c ChunkCoord) {
	m.mu.Lock()
	added := m.toGenerate.Add(c)
	m.mu.Unlock()
	if !added {
		return
	}
	m.generateCond.Signal()
	m.notify(Event{Kind: EventGenerateRequested, Chunk: c})
}

// RequestEviction queues a chunk for removal. Evicting a chunk that is not
// resident is harmless.
func (m *Manager) RequestEviction(c ChunkCoord) {
	m.mu.Lock()
	added := m.toEvict.Add(c)
	m.mu.Unlock()
	if !added {
		return
	}
	m.evictCond.Signal()
	m.notify(Event{Kind: EventEvictRequested, Chunk: c})
}

// Pending reports the sizes of the generation and eviction queues.
func (m *Manager) Pending() (generate, evict int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toGenerate.Len(), m.toEvict.Len()
}

func (m *Manager) Resident(c ChunkCoord) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.chunks[c]
	return ok
}

// View is read access to the resident chunks. It is only valid inside the
// callback given to Manager.View.
type View struct {
	chunks map[ChunkCoord]*Chunk
}

func (v View) Chunk(c ChunkCoord) (*Chunk, bool) {
	ch, ok := v.chunks[c]
	return ch, ok
}

func (v View) Len() int {
	return len(v.chunks)
}

// Coords lists resident chunks in lexicographic order.
func (v View) Coords() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(v.chunks))
	for c := range v.chunks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// View runs fn with the coordination lock held. fn must not retain the View
// or call back into the manager.
func (m *Manager) View(fn func(View)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(View{chunks: m.chunks})
}

// WaitGenerated polls until the generation queue is empty.
func (m *Manager) WaitGenerated(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		m.mu.Lock()
		pending := m.toGenerate.Len()
		stopped := m.stopped
		m.mu.Unlock()

		if pending == 0 {
			return nil
		}
		if stopped {
			return ErrStopped
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Manager) runGeneration() {
	defer m.wg.Done()
	m.logger.Printf("generation worker started")
	defer m.logger.Printf("generation worker stopped")

	m.mu.Lock()
	for {
		for !m.stopped && m.toGenerate.Len() == 0 {
			m.generateCond.Wait()
		}
		if m.stopped {
			m.mu.Unlock()
			return
		}
		coord, _ := m.toGenerate.First()
		m.mu.Unlock()

		start := time.Now()
		chunk := m.generator.Generate(coord, m.layout.ChunkBounds(coord))
		took := time.Since(start)
		m.savePreview(chunk)

		m.mu.Lock()
		if m.stopped {
			m.mu.Unlock()
			m.notify(Event{Kind: EventDiscarded, Chunk: coord})
			return
		}
		if _, exists := m.chunks[coord]; !exists {
			m.chunks[coord] = chunk
		}
		m.toGenerate.Remove(coord)
		m.mu.Unlock()

		m.logger.Printf("chunk %v generated in %s (%d trees)", coord, took, len(chunk.Trees))
		m.notify(Event{Kind: EventGenerated, Chunk: coord, Took: took, Trees: len(chunk.Trees)})

		m.mu.Lock()
	}
}

// runEviction drains the eviction queue entirely under the lock.
func (m *Manager) runEviction() {
	defer m.wg.Done()
	m.logger.Printf("eviction worker started")
	defer m.logger.Printf("eviction worker stopped")

	m.mu.Lock()
	for {
		for !m.stopped && m.toEvict.Len() == 0 {
			m.evictCond.Wait()
		}
		if m.stopped {
			m.mu.Unlock()
			return
		}

		var evicted []ChunkCoord
		for !m.stopped {
			coord, ok := m.toEvict.First()
			if !ok {
				break
			}
			if _, resident := m.chunks[coord]; resident {
				delete(m.chunks, coord)
				evicted = append(evicted, coord)
			}
			m.toEvict.Remove(coord)
		}
		m.mu.Unlock()

		for _, coord := range evicted {
			m.notify(Event{Kind: EventEvicted, Chunk: coord})
		}

		m.mu.Lock()
	}
}

func (m *Manager) savePreview(chunk *Chunk) {
	if m.previewDir == "" || chunk == nil {
		return
	}
	if err := saveChunkPreview(chunk, m.previewDir); err != nil {
		m.logger.Printf("chunk %v preview failed: %v", chunk.Key, err)
	}
}

func (m *Manager) notify(ev Event) {
	if m.observer != nil {
		m.observer.ChunkEvent(ev)
	}
}
