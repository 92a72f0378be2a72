package component

// Input stores per-frame virtual input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64
	LookX float64
	LookY float64
	Turn  float64

	Dash         bool
	DashPressed  bool
	DashReleased bool
	PausePressed bool
}

var InputComponent = NewComponent[Input]()
