// skullviz renders the skull's eyes live in the terminal. It subscribes to
// the daemon's /ws/state stream and draws each eye as a filled disk with a
// pupil, eyelids closing as the blink factor rises.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
)

// eyeState mirrors the daemon's snapshot wire format.
type eyeState struct {
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	BlinkFactor float64 `json:"blink_factor"`
}

// skullState mirrors the daemon's status broadcast.
type skullState struct {
	Mode           string     `json:"mode"`
	FaceDetected   bool       `json:"face_detected"`
	FaceConfidence float64    `json:"face_confidence"`
	Eyes           []eyeState `json:"eyes"`
	SoundPlaying   bool       `json:"sound_playing"`
}

// gazeScale maps daemon gaze units onto the drawn disk.
const gazeScale = 240.0

type viz struct {
	screen tcell.Screen
	addr   string

	mu        sync.RWMutex
	state     skullState
	connected bool
}

func newViz(addr string) (*viz, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &viz{screen: screen, addr: addr}, nil
}

// subscribe keeps a websocket to the daemon open, reconnecting on failure.
func (v *viz) subscribe() {
	url := "ws://" + v.addr + "/ws/state"
	for {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			v.setConnected(false)
			time.Sleep(time.Second)
			continue
		}
		v.setConnected(true)

		for {
			var st skullState
			if err := conn.ReadJSON(&st); err != nil {
				break
			}
			v.mu.Lock()
			v.state = st
			v.mu.Unlock()
		}

		conn.Close()
		v.setConnected(false)
	}
}

func (v *viz) setConnected(up bool) {
	v.mu.Lock()
	v.connected = up
	v.mu.Unlock()
}

func (v *viz) run() {
	go v.subscribe()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- v.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func (v *viz) draw() {
	v.mu.RLock()
	st := v.state
	connected := v.connected
	v.mu.RUnlock()

	v.screen.Clear()
	width, height := v.screen.Size()

	header := fmt.Sprintf(" mode: %-10s face: %-5v confidence: %.2f",
		st.Mode, st.FaceDetected, st.FaceConfidence)
	if st.SoundPlaying {
		header += "  ♪"
	}
	if !connected {
		header = " connecting to " + v.addr + " ..."
	}
	drawText(v.screen, 1, 0, tcell.StyleDefault.Foreground(tcell.ColorYellow), header)

	if n := len(st.Eyes); n > 0 {
		cell := width / n
		radius := min(cell/4, height/2-2)
		if radius < 2 {
			radius = 2
		}
		for i, eye := range st.Eyes {
			cx := cell*i + cell/2
			cy := height/2 + 1
			drawEye(v.screen, eye, cx, cy, radius)
		}
	}

	drawText(v.screen, 1, height-1, tcell.StyleDefault.Foreground(tcell.ColorGray),
		"q to quit")
	v.screen.Show()
}

// drawEye paints one eye. Terminal cells are about twice as tall as wide,
// so x distances are halved when testing against the radius.
func drawEye(s tcell.Screen, eye eyeState, cx, cy, radius int) {
	sclera := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	iris := tcell.StyleDefault.Foreground(tcell.ColorRed)
	lid := tcell.StyleDefault.Foreground(tcell.ColorGray)

	// Pupil offset in cells; gaze y points up, screen y points down.
	px := cx + int(eye.X/gazeScale*float64(radius)*2)
	py := cy - int(eye.Y/gazeScale*float64(radius))

	lidRows := int(eye.BlinkFactor * float64(radius))

	for dy := -radius; dy <= radius; dy++ {
		for dx := -2 * radius; dx <= 2*radius; dx++ {
			d := math.Hypot(float64(dx)/2, float64(dy))
			if d > float64(radius) {
				continue
			}

			x, y := cx+dx, cy+dy
			closed := dy < -radius+lidRows || dy > radius-lidRows
			switch {
			case closed:
				s.SetContent(x, y, '─', nil, lid)
			case abs(x-px) <= 1 && y == py:
				s.SetContent(x, y, '●', nil, iris)
			default:
				s.SetContent(x, y, '·', nil, sclera)
			}
		}
	}

	name := eye.Name
	drawText(s, cx-len(name)/2, cy+radius+1, tcell.StyleDefault, name)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func main() {
	addr := flag.String("addr", "localhost:8090", "skulld address")
	flag.Parse()

	v, err := newViz(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	v.run()
}
