package sim

// PaddleIntent is what the humans want one paddle to do this tick.
type PaddleIntent struct {
	Up, Down bool

	// Target is a pointer's vertical position in court units. When
	// HasTarget is set the paddle is centered on it and Up/Down are ignored.
	Target    float64
	HasTarget bool
}

// Controls is the input snapshot consumed by one Step.
type Controls struct {
	Left  PaddleIntent
	Right PaddleIntent
}

// Intent returns the intent for one side.
func (c Controls) Intent(side Side) PaddleIntent {
	if side == Left {
		return c.Left
	}
	return c.Right
}
