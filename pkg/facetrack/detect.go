package facetrack

import "image"

// Position is a normalized face position: X in [-1, 1] left to right,
// Y in [-1, 1] top to bottom, (0, 0) at frame center.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Source yields a normalized face position per call; the second return is
// false when no usable face is visible this frame. Implementations are the
// camera-backed Tracker and the Sim used when no camera is attached.
type Source interface {
	Detect() (Position, bool)
	Close() error
}

// largestRect returns the biggest detection, the closest person to the
// camera. Returns a zero rect when the slice is empty.
func largestRect(rects []image.Rectangle) image.Rectangle {
	var best image.Rectangle
	bestArea := 0
	for _, r := range rects {
		if a := r.Dx() * r.Dy(); a > bestArea {
			best = r
			bestArea = a
		}
	}
	return best
}

// normalizeCenter maps a face rect's center to [-1, 1] per axis within a
// frame of the given size, clamping at the edges.
func normalizeCenter(r image.Rectangle, frameW, frameH int) Position {
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2

	halfW := float64(frameW) / 2
	halfH := float64(frameH) / 2

	p := Position{
		X: (cx - halfW) / halfW,
		Y: (cy - halfH) / halfH,
	}
	p.X = clamp(p.X, -1, 1)
	p.Y = clamp(p.Y, -1, 1)
	return p
}

// faceConfidence estimates detection confidence from the face's share of
// the frame: a face filling a quarter of the frame (or more) scores 1.0.
func faceConfidence(r image.Rectangle, frameW, frameH int) float64 {
	frameArea := float64(frameW * frameH)
	if frameArea == 0 {
		return 0
	}
	conf := float64(r.Dx()*r.Dy()) / (frameArea * 0.25)
	return clamp(conf, 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
