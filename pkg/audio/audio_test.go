package audio

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// writeSoundDir lays out a fake sounds tree. The files only need to exist
// for library scanning; nothing decodes them.
func writeSoundDir(t *testing.T, files map[string][]string) string {
	t.Helper()
	dir := t.TempDir()
	for sub, names := range files {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
		for _, name := range names {
			path := filepath.Join(dir, sub, name)
			if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return dir
}

func testManager(t *testing.T, files map[string][]string) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dir = writeSoundDir(t, files)
	return NewManager(cfg, rand.New(rand.NewSource(1)))
}

func TestScanLibrary_Categorizes(t *testing.T) {
	m := testManager(t, map[string][]string{
		"ambient":   {"murmur1.wav", "murmur2.wav"},
		"detection": {"gasp.wav"},
		"scare":     {"shriek.WAV"},
	})

	if got := len(m.library[Ambient]); got != 2 {
		t.Errorf("ambient files = %d, want 2", got)
	}
	if got := len(m.library[Detection]); got != 1 {
		t.Errorf("detection files = %d, want 1", got)
	}
	if got := len(m.library[Scare]); got != 1 {
		t.Errorf("scare files = %d, want 1 (extension match should be case-insensitive)", got)
	}
}

func TestScanLibrary_IgnoresNonWAV(t *testing.T) {
	m := testManager(t, map[string][]string{
		"ambient": {"murmur.wav", "readme.txt", "notes.mp3"},
	})
	if got := len(m.library[Ambient]); got != 1 {
		t.Errorf("ambient files = %d, want 1", got)
	}
}

func TestScanLibrary_MissingCategoryDir(t *testing.T) {
	m := testManager(t, map[string][]string{
		"ambient": {"murmur.wav"},
	})
	if got := len(m.library[Scare]); got != 0 {
		t.Errorf("scare files = %d, want 0", got)
	}
}

func TestPlay_QueuesFile(t *testing.T) {
	m := testManager(t, map[string][]string{
		"detection": {"gasp.wav"},
	})

	if err := m.PlayDetection(); err != nil {
		t.Fatalf("PlayDetection: %v", err)
	}
	if got := m.QueueLen(); got != 1 {
		t.Errorf("queue length = %d, want 1", got)
	}
}

func TestPlay_EmptyCategory(t *testing.T) {
	m := testManager(t, map[string][]string{
		"ambient": {"murmur.wav"},
	})

	if err := m.PlayScare(); err != ErrNoSounds {
		t.Errorf("PlayScare on empty category = %v, want ErrNoSounds", err)
	}
}

func TestPlay_UnknownCategory(t *testing.T) {
	m := testManager(t, nil)
	if err := m.Play(Category("laugh")); err != ErrUnknownCategory {
		t.Errorf("Play(laugh) = %v, want ErrUnknownCategory", err)
	}
}

func TestPlay_FullQueueDrops(t *testing.T) {
	m := testManager(t, map[string][]string{
		"ambient": {"murmur.wav"},
	})

	// Worker is not running, so the queue only fills.
	for i := 0; i < cap(m.queue)+3; i++ {
		if err := m.PlayAmbient(); err != nil {
			t.Fatalf("PlayAmbient #%d: %v", i, err)
		}
	}
	if got := m.QueueLen(); got != cap(m.queue) {
		t.Errorf("queue length = %d, want %d", got, cap(m.queue))
	}
}

func TestSetVolume_Clamps(t *testing.T) {
	m := testManager(t, nil)

	m.SetVolume(1.5)
	if got := m.Volume(); got != 1.0 {
		t.Errorf("volume after SetVolume(1.5) = %v, want 1.0", got)
	}
	m.SetVolume(-0.2)
	if got := m.Volume(); got != 0.0 {
		t.Errorf("volume after SetVolume(-0.2) = %v, want 0.0", got)
	}
	m.SetVolume(0.3)
	if got := m.Volume(); got != 0.3 {
		t.Errorf("volume after SetVolume(0.3) = %v, want 0.3", got)
	}
}

func TestIsPlaying_DefaultFalse(t *testing.T) {
	m := testManager(t, nil)
	if m.IsPlaying() {
		t.Error("IsPlaying true before any playback")
	}
}
