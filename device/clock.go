package device

// FrameClock counts fixed-step ticks.
type FrameClock struct {
	frame int
	tps   int
}

func NewFrameClock(tps int) *FrameClock {
	return &FrameClock{tps: tps}
}

// Tick advances to the next frame. Call it before any input is dispatched.
func (c *FrameClock) Tick() {
	c.frame++
}

func (c *FrameClock) CurrentFrame() int {
	return c.frame
}

// DeltaTime is the fixed tick length in seconds.
func (c *FrameClock) DeltaTime() float64 {
	if c.tps <= 0 {
		return 0
	}
	return 1 / float64(c.tps)
}
