package core

// Action represents a semantic playground action, abstracted from physical
// key presses.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionRotateCW
	ActionRotateCCW
	ActionGrow
	ActionShrink
	ActionSwitch  // Tab - change the active shape
	ActionSpin    // Space - toggle automatic rotation
	ActionReset   // R - restore the initial pair
	ActionCapture // Ctrl+S - save the pair as a scenario case
	ActionQuit    // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionGrow:      "Grow",
	ActionShrink:    "Shrink",
	ActionSwitch:    "Switch",
	ActionSpin:      "Spin",
	ActionReset:     "Reset",
	ActionCapture:   "Capture",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Delta returns the unit translation an action applies, in world
// coordinates with y growing downwards. Non-movement actions return zero.
func (a Action) Delta() Vec2 {
	switch a {
	case ActionUp:
		return Vec2{0, -1}
	case ActionDown:
		return Vec2{0, 1}
	case ActionLeft:
		return Vec2{-1, 0}
	case ActionRight:
		return Vec2{1, 0}
	default:
		return Vec2{}
	}
}
