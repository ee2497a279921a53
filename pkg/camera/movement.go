package camera

import "fmt"

// Movement is a direction of keyboard-style camera translation. It keeps the
// camera independent of any window system's key codes.
type Movement uint8

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

var movementNames = [...]string{
	Forward:  "forward",
	Backward: "backward",
	Left:     "left",
	Right:    "right",
	Up:       "up",
	Down:     "down",
}

func (m Movement) String() string {
	if int(m) < len(movementNames) {
		return movementNames[m]
	}
	return fmt.Sprintf("Movement(%d)", uint8(m))
}
