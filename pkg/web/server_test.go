package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/trioptic/go-skull/pkg/audio"
	"github.com/trioptic/go-skull/pkg/eyes"
	"github.com/trioptic/go-skull/pkg/leds"
)

func newTestServer() *Server {
	return NewServer("0", []string{"left", "right", "middle"})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, out
}

func TestStatus_NotWired(t *testing.T) {
	s := newTestServer()
	code, _ := doJSON(t, s, "GET", "/api/status", nil)
	if code != 503 {
		t.Errorf("status code = %d, want 503", code)
	}
}

func TestStatus_ReturnsCallbackState(t *testing.T) {
	s := newTestServer()
	s.OnStatus = func() Status {
		return Status{
			Mode:         "tracking",
			FaceDetected: true,
			Eyes: []eyes.Snapshot{
				{Name: "left", X: 10, Y: -5, BlinkFactor: 0.25},
			},
		}
	}

	code, body := doJSON(t, s, "GET", "/api/status", nil)
	if code != 200 {
		t.Fatalf("status code = %d, want 200", code)
	}

	var st Status
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.Mode != "tracking" || !st.FaceDetected {
		t.Errorf("unexpected status %+v", st)
	}
	if len(st.Eyes) != 1 || st.Eyes[0].Name != "left" {
		t.Errorf("unexpected eyes %+v", st.Eyes)
	}
}

func TestSetMode(t *testing.T) {
	s := newTestServer()
	var got eyes.Mode
	s.OnSetMode = func(m eyes.Mode) error {
		got = m
		return nil
	}

	code, _ := doJSON(t, s, "POST", "/api/mode", SetModeRequest{Mode: "rest"})
	if code != 200 {
		t.Fatalf("status code = %d, want 200", code)
	}
	if got != eyes.ModeRest {
		t.Errorf("mode = %v, want ModeRest", got)
	}
}

func TestSetMode_Unknown(t *testing.T) {
	s := newTestServer()
	s.OnSetMode = func(eyes.Mode) error { return nil }

	code, _ := doJSON(t, s, "POST", "/api/mode", SetModeRequest{Mode: "asleep"})
	if code != 400 {
		t.Errorf("status code = %d, want 400", code)
	}
}

func TestTuning_RoundTrip(t *testing.T) {
	s := newTestServer()
	live := eyes.DefaultConfig()
	s.OnTuning = func() eyes.Config { return live }
	s.OnSetTuning = func(c eyes.Config) error {
		live = c
		return nil
	}

	code, body := doJSON(t, s, "GET", "/api/tuning", nil)
	if code != 200 {
		t.Fatalf("GET tuning code = %d, want 200", code)
	}
	var cfg eyes.Config
	if err := json.Unmarshal(body, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.DisplayRadius != live.DisplayRadius {
		t.Errorf("display radius = %v, want %v", cfg.DisplayRadius, live.DisplayRadius)
	}

	// Partial update: only the track scale changes.
	code, _ = doJSON(t, s, "POST", "/api/tuning", map[string]float64{"track_scale": 0.5})
	if code != 200 {
		t.Fatalf("POST tuning code = %d, want 200", code)
	}
	if live.TrackScale != 0.5 {
		t.Errorf("track scale = %v, want 0.5", live.TrackScale)
	}
	if live.GazeMax != eyes.DefaultConfig().GazeMax {
		t.Error("partial update clobbered untouched field")
	}
}

func TestTuning_RejectsInvalid(t *testing.T) {
	s := newTestServer()
	s.OnTuning = func() eyes.Config { return eyes.DefaultConfig() }
	s.OnSetTuning = func(eyes.Config) error {
		t.Error("invalid config reached OnSetTuning")
		return nil
	}

	code, _ := doJSON(t, s, "POST", "/api/tuning", map[string]float64{"track_scale": -1})
	if code != 400 {
		t.Errorf("status code = %d, want 400", code)
	}
}

func TestSetLEDs(t *testing.T) {
	s := newTestServer()
	var got LEDRequest
	s.OnSetLEDs = func(r LEDRequest) error {
		got = r
		return nil
	}

	pattern := "pulse"
	code, _ := doJSON(t, s, "POST", "/api/leds", LEDRequest{
		Pattern: &pattern,
		Color:   &RGB{R: 255, G: 60, B: 0},
	})
	if code != 204 {
		t.Fatalf("status code = %d, want 204", code)
	}
	if got.Pattern == nil || *got.Pattern != "pulse" {
		t.Errorf("pattern not forwarded: %+v", got)
	}
	if got.Color == nil || got.Color.R != 255 {
		t.Errorf("color not forwarded: %+v", got)
	}
	if got.Brightness != nil {
		t.Error("absent brightness should stay nil")
	}
}

func TestLEDState(t *testing.T) {
	s := newTestServer()
	s.OnLEDState = func() leds.State {
		return leds.State{Pattern: leds.PatternFire, Brightness: 0.5, Speed: 2}
	}

	code, body := doJSON(t, s, "GET", "/api/leds", nil)
	if code != 200 {
		t.Fatalf("status code = %d, want 200", code)
	}
	var st leds.State
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatal(err)
	}
	if st.Pattern != leds.PatternFire || st.Speed != 2 {
		t.Errorf("led state = %+v", st)
	}
}

func TestPlaySound(t *testing.T) {
	s := newTestServer()
	var got audio.Category
	s.OnPlaySound = func(c audio.Category) error {
		got = c
		return nil
	}

	code, _ := doJSON(t, s, "POST", "/api/sound/scare", nil)
	if code != 200 {
		t.Fatalf("status code = %d, want 200", code)
	}
	if got != audio.Scare {
		t.Errorf("category = %q, want scare", got)
	}
}

func TestPlaySound_UnknownCategory(t *testing.T) {
	s := newTestServer()
	s.OnPlaySound = func(c audio.Category) error {
		return audio.ErrUnknownCategory
	}

	code, _ := doJSON(t, s, "POST", "/api/sound/laugh", nil)
	if code != 404 {
		t.Errorf("status code = %d, want 404", code)
	}
}

func TestPublishFrame_UnknownEyeDropped(t *testing.T) {
	s := newTestServer()
	// Must not panic or register anywhere.
	s.PublishFrame("fourth", []byte{0xff})
	if got := s.StateClientCount(); got != 0 {
		t.Errorf("state clients = %d, want 0", got)
	}
}
