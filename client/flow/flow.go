package flow

// State is the scene flow state. Transitions between states are driven by the
// active scene's GUI.
type State int

const (
	StateStart State = iota
	StateCutScene
	StateGame
	StateLose
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateCutScene:
		return "CutScene"
	case StateGame:
		return "Game"
	case StateLose:
		return "Lose"
	}
	return "Unknown"
}

// Edge names a transition of the flow.
type Edge int

const (
	EdgeStart Edge = iota
	EdgePlay
	EdgeNext
	EdgeLose
	EdgeMainMenu
)

func (e Edge) String() string {
	switch e {
	case EdgeStart:
		return "Start"
	case EdgePlay:
		return "Play"
	case EdgeNext:
		return "Next"
	case EdgeLose:
		return "Lose"
	case EdgeMainMenu:
		return "MainMenu"
	}
	return "Unknown"
}

// source returns the only state the edge may leave from. EdgeStart leaves
// from any state and reports false.
func (e Edge) source() (State, bool) {
	switch e {
	case EdgePlay:
		return StateStart, true
	case EdgeNext:
		return StateCutScene, true
	case EdgeLose:
		return StateGame, true
	case EdgeMainMenu:
		return StateLose, true
	}
	return 0, false
}

// Target returns the state the edge leads to.
func (e Edge) Target() State {
	switch e {
	case EdgePlay:
		return StateCutScene
	case EdgeNext:
		return StateGame
	case EdgeLose:
		return StateLose
	}
	return StateStart
}
