// Package relay defines the message protocol between the foreground and
// the offscreen render worker.
//
// Messages travel over FIFO channels with no acknowledgment and no
// backpressure; the worker applies whatever has accumulated since its
// last frame. All types are JSON-serializable so the wire shape matches
// what an out-of-process transport would carry.
package relay

import (
	"strconv"
	"time"

	"github.com/Faultbox/renderbench/internal/stats"
)

// Action identifies an interaction event variant.
type Action string

const (
	ActionStart  Action = "start"
	ActionRotate Action = "rotate"
	ActionEnd    Action = "end"
	ActionZoom   Action = "zoom"
)

// Message is one foreground-to-worker message. Type selects which fields
// are meaningful.
type Message struct {
	Type string `json:"type"` // init, resize, updateCount, interaction

	// init
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	PixelRatio  float64 `json:"pixelRatio,omitempty"`
	ObjectCount int     `json:"objectCount,omitempty"`

	// updateCount
	Count int `json:"count,omitempty"`

	// interaction
	Action Action  `json:"action,omitempty"`
	DeltaX float32 `json:"deltaX,omitempty"`
	DeltaY float32 `json:"deltaY,omitempty"`
	Delta  float32 `json:"delta,omitempty"`
	// Shared wall-clock milliseconds; only start and zoom carry one.
	Timestamp int64 `json:"timestamp,omitempty"`
}

// Init builds an init message.
func Init(width, height int, pixelRatio float64, objectCount int) Message {
	return Message{
		Type:        "init",
		Width:       width,
		Height:      height,
		PixelRatio:  pixelRatio,
		ObjectCount: objectCount,
	}
}

// Resize builds a resize message.
func Resize(width, height int) Message {
	return Message{Type: "resize", Width: width, Height: height}
}

// UpdateCount builds an object-count change message.
func UpdateCount(count int) Message {
	return Message{Type: "updateCount", Count: count}
}

// Start builds a drag-start interaction stamped with the shared clock.
func Start(at time.Time) Message {
	return Message{Type: "interaction", Action: ActionStart, Timestamp: at.UnixMilli()}
}

// Rotate builds a drag-move interaction. Rotations carry no timestamp;
// latency is seeded only by start and zoom events.
func Rotate(deltaX, deltaY float32) Message {
	return Message{Type: "interaction", Action: ActionRotate, DeltaX: deltaX, DeltaY: deltaY}
}

// End builds a drag-end interaction.
func End() Message {
	return Message{Type: "interaction", Action: ActionEnd}
}

// Zoom builds a wheel interaction stamped with the shared clock.
func Zoom(delta float32, at time.Time) Message {
	return Message{Type: "interaction", Action: ActionZoom, Delta: delta, Timestamp: at.UnixMilli()}
}

// EventTime returns the shared-clock timestamp carried by an interaction
// message, or false when the variant carries none.
func (m Message) EventTime() (time.Time, bool) {
	if m.Timestamp == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(m.Timestamp), true
}

// Stats is one worker-to-foreground statistics message. Numeric fields
// are pre-formatted strings with two decimal places, except FPS which is
// an integer.
type Stats struct {
	Type             string `json:"type"` // always "stats"
	FPS              int    `json:"fps"`
	AvgFrameTime     string `json:"avgFrameTime"`
	DroppedFrames    int    `json:"droppedFrames"`
	MaxDelay         string `json:"maxDelay"`
	InteractionDelay string `json:"interactionDelay"`
}

// NewStats formats an aggregated snapshot for the foreground.
func NewStats(s stats.Snapshot) Stats {
	return Stats{
		Type:             "stats",
		FPS:              s.FPS,
		AvgFrameTime:     format2(s.AvgFrameTime),
		DroppedFrames:    s.DroppedFrames,
		MaxDelay:         format2(s.MaxDelay),
		InteractionDelay: format2(s.InteractionDelay),
	}
}

func format2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
