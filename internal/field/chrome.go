package field

const (
	arrowWidth        = 0.08
	arrowWidthPressed = 0.09
)

// Chrome describes the on-screen furniture around the plot. It carries no
// semantic weight; front-ends read it to decide what to draw.
type Chrome struct {
	LabelVisible      bool
	HintVisible       bool
	ArrowsVisible     bool
	FullscreenVisible bool
	LeftPressed       bool
	RightPressed      bool
}

func initialChrome() Chrome {
	return Chrome{
		HintVisible:       true,
		ArrowsVisible:     true,
		FullscreenVisible: true,
	}
}

// Pressed reports whether the arrow for d is held down.
func (c Chrome) Pressed(d Direction) bool {
	if d == Left {
		return c.LeftPressed
	}
	return c.RightPressed
}

// ArrowWidth is the arrow's width as a fraction of the viewport width.
func (c Chrome) ArrowWidth(d Direction) float64 {
	if c.Pressed(d) {
		return arrowWidthPressed
	}
	return arrowWidth
}

func (c *Chrome) setPressed(d Direction, v bool) {
	if d == Left {
		c.LeftPressed = v
	} else {
		c.RightPressed = v
	}
}
