package trace

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tileworld/internal/world"
)

// Entry is one line of the lifecycle trace.
type Entry struct {
	Session string    `json:"session"`
	Seq     uint64    `json:"seq"`
	At      time.Time `json:"at"`
	Kind    string    `json:"kind"`
	I       int       `json:"i"`
	J       int       `json:"j"`
	TookMS  float64   `json:"tookMs,omitempty"`
	Trees   int       `json:"trees,omitempty"`
}

// Recorder is a world.Observer that writes every event to a JSONL trace.
// Write failures are logged once and otherwise ignored.
type Recorder struct {
	session string
	w       *JSONLZstdWriter
	logger  *log.Logger
	seq     atomic.Uint64
	warn    sync.Once
}

// NewRecorder writes traces under dir, one session id per recorder.
func NewRecorder(dir string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		session: uuid.NewString(),
		w:       NewJSONLZstdWriter(dir, "chunks"),
		logger:  logger,
	}
}

func (r *Recorder) Session() string {
	return r.session
}

func (r *Recorder) ChunkEvent(ev world.Event) {
	entry := Entry{
		Session: r.session,
		Seq:     r.seq.Add(1),
		At:      r.w.now().UTC(),
		Kind:    string(ev.Kind),
		I:       ev.Chunk.I,
		J:       ev.Chunk.J,
		Trees:   ev.Trees,
	}
	if ev.Took > 0 {
		entry.TookMS = float64(ev.Took) / float64(time.Millisecond)
	}
	if err := r.w.Write(entry); err != nil {
		r.warn.Do(func() {
			r.logger.Printf("chunk trace write failed, further failures suppressed: %v", err)
		})
	}
}

func (r *Recorder) Close() error {
	return r.w.Close()
}
