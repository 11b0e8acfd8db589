package field

import "fmt"

type EventKind int

const (
	EventKeyDown EventKind = iota
	EventPressStart
	EventPressStop
	EventResize
	EventFirstTouch
	EventFirstKeyPress
	EventFullscreen
)

var eventNames = map[EventKind]string{
	EventKeyDown:       "key-down",
	EventPressStart:    "press-start",
	EventPressStop:     "press-stop",
	EventResize:        "resize",
	EventFirstTouch:    "first-touch",
	EventFirstKeyPress: "first-key-press",
	EventFullscreen:    "fullscreen",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one input delivered by a front-end. Direction is read by the
// directional kinds, Width and Height by EventResize.
type Event struct {
	Kind      EventKind
	Direction Direction
	Width     float64
	Height    float64
}

func KeyDownEvent(d Direction) Event    { return Event{Kind: EventKeyDown, Direction: d} }
func PressStartEvent(d Direction) Event { return Event{Kind: EventPressStart, Direction: d} }
func PressStopEvent(d Direction) Event  { return Event{Kind: EventPressStop, Direction: d} }

func ResizeEvent(width, height float64) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

var handlers = map[EventKind]func(*Controller, Event) error{
	EventKeyDown: func(c *Controller, ev Event) error {
		return c.KeyDown(ev.Direction)
	},
	EventPressStart: func(c *Controller, ev Event) error {
		return c.PressStart(ev.Direction)
	},
	EventPressStop: func(c *Controller, ev Event) error {
		c.PressStop(ev.Direction)
		return nil
	},
	EventResize: func(c *Controller, ev Event) error {
		return c.Resize(ev.Width, ev.Height)
	},
	EventFirstTouch: func(c *Controller, _ Event) error {
		c.FirstTouch()
		return nil
	},
	EventFirstKeyPress: func(c *Controller, _ Event) error {
		c.FirstKeyPress()
		return nil
	},
	EventFullscreen: func(c *Controller, _ Event) error {
		c.RequestFullscreen()
		return nil
	},
}

// Dispatch routes ev to its handler. Events are handled strictly in the
// order Dispatch is called.
func (c *Controller) Dispatch(ev Event) error {
	h, ok := handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind)
	}
	return h(c, ev)
}
