package model

// Mode is a vessel operating mode.
// Keep these values stable; they are intended for CSV output.
type Mode string

const (
	ModeTransit  Mode = "TRANSIT"
	ModeManeuver Mode = "MANEUVER"
)

func (m Mode) Valid() bool {
	return m == ModeTransit || m == ModeManeuver
}
