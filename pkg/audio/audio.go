// Package audio plays the skull's sound effects: ambient murmurs, cues on
// face detection, and scares. WAV files are grouped by category under the
// sounds directory (sounds/ambient/*.wav, sounds/detection/*.wav,
// sounds/scare/*.wav) and played through a single mixer by a background
// worker, so triggering a sound never blocks the animation loop.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/trioptic/go-skull/internal/log"
)

// Category groups sound effects by trigger.
type Category string

const (
	Ambient   Category = "ambient"
	Detection Category = "detection"
	Scare     Category = "scare"
)

var (
	// ErrUnknownCategory is returned for a category with no directory.
	ErrUnknownCategory = errors.New("unknown sound category")

	// ErrNoSounds is returned when a category has no playable files.
	ErrNoSounds = errors.New("no sounds in category")
)

// Config holds audio playback parameters.
type Config struct {
	// Dir is the root sounds directory with one subdirectory per category.
	Dir string `json:"dir"`

	// SampleRate of the output device.
	SampleRate int `json:"sample_rate"`

	// BufferMs is the speaker buffer length in milliseconds.
	BufferMs int `json:"buffer_ms"`

	// Volume is linear gain in [0, 1].
	Volume float64 `json:"volume"`
}

// DefaultConfig returns the standard playback setup.
func DefaultConfig() Config {
	return Config{
		Dir:        "sounds",
		SampleRate: 22050,
		BufferMs:   100,
		Volume:     0.75,
	}
}

// Manager owns the sound library and the playback worker.
type Manager struct {
	cfg     Config
	rng     *rand.Rand
	library map[Category][]string

	queue chan string
	stop  chan struct{}
	wg    sync.WaitGroup

	playing atomic.Bool
	silent  atomic.Bool
	started bool

	mu     sync.RWMutex
	volume float64
}

// NewManager scans the sound library. Missing category directories are
// logged and skipped, not fatal. A nil rng gets a time-seeded source.
func NewManager(cfg Config, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Manager{
		cfg:     cfg,
		rng:     rng,
		library: scanLibrary(cfg.Dir),
		queue:   make(chan string, 8),
		stop:    make(chan struct{}),
		volume:  cfg.Volume,
	}
	return m
}

// scanLibrary catalogs WAV files under dir, one category per subdirectory.
func scanLibrary(dir string) map[Category][]string {
	library := make(map[Category][]string)
	for _, cat := range []Category{Ambient, Detection, Scare} {
		sub := filepath.Join(dir, string(cat))
		entries, err := os.ReadDir(sub)
		if err != nil {
			log.Warn("sound category missing", "category", cat, "dir", sub)
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
				continue
			}
			library[cat] = append(library[cat], filepath.Join(sub, e.Name()))
		}
		log.Debug("sound category loaded", "category", cat, "files", len(library[cat]))
	}
	return library
}

// Start initializes the speaker and launches the playback worker. If no
// audio device is available the manager runs silently instead of failing,
// so the skull still animates on a dev machine without sound.
func (m *Manager) Start() error {
	if m.started {
		return nil
	}
	m.started = true

	sr := beep.SampleRate(m.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Duration(m.cfg.BufferMs)*time.Millisecond)); err != nil {
		log.Warn("audio device unavailable, running silent", "error", err)
		m.silent.Store(true)
	}

	m.wg.Add(1)
	go m.worker()
	return nil
}

// worker drains the queue, playing one file at a time.
func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stop:
			return
		case path := <-m.queue:
			if m.silent.Load() {
				continue
			}
			if err := m.playFile(path); err != nil {
				log.Error("sound playback failed", "file", path, "error", err)
			}
		}
	}
}

// playFile decodes and plays a single WAV, blocking until it finishes or
// the manager stops.
func (m *Manager) playFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var stream beep.Streamer = streamer
	if format.SampleRate != beep.SampleRate(m.cfg.SampleRate) {
		stream = beep.Resample(4, format.SampleRate, beep.SampleRate(m.cfg.SampleRate), streamer)
	}

	m.mu.RLock()
	vol := m.volume
	m.mu.RUnlock()

	// beep volume is log-scaled; convert the linear 0..1 setting.
	stream = &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   math.Log2(math.Max(vol, 1e-4)),
		Silent:   vol <= 0,
	}

	m.playing.Store(true)
	defer m.playing.Store(false)

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-m.stop:
	}
	return nil
}

// Play queues a random sound from the category. Returns ErrNoSounds if the
// category is empty; a full queue drops the sound rather than block.
func (m *Manager) Play(cat Category) error {
	files := m.library[cat]
	if len(files) == 0 {
		if cat != Ambient && cat != Detection && cat != Scare {
			return ErrUnknownCategory
		}
		return ErrNoSounds
	}

	path := files[m.rng.Intn(len(files))]
	select {
	case m.queue <- path:
		log.Debug("sound queued", "category", cat, "file", filepath.Base(path))
	default:
		log.Warn("sound queue full, dropping", "category", cat)
	}
	return nil
}

// PlayAmbient queues a random ambient sound.
func (m *Manager) PlayAmbient() error { return m.Play(Ambient) }

// PlayDetection queues a random face-detected cue.
func (m *Manager) PlayDetection() error { return m.Play(Detection) }

// PlayScare queues a random scare sound.
func (m *Manager) PlayScare() error { return m.Play(Scare) }

// SetVolume sets linear gain, clamped to [0, 1]. Applies from the next
// queued sound.
func (m *Manager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.mu.Lock()
	m.volume = v
	m.mu.Unlock()
}

// Volume returns the current linear gain.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// IsPlaying reports whether a sound is currently playing.
func (m *Manager) IsPlaying() bool {
	return m.playing.Load()
}

// QueueLen returns the number of queued sounds.
func (m *Manager) QueueLen() int {
	return len(m.queue)
}

// Close stops the worker and drops any queued sounds.
func (m *Manager) Close() error {
	if !m.started {
		return nil
	}
	close(m.stop)
	m.wg.Wait()
	return nil
}
