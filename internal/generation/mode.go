package generation

import (
	"fmt"
	"strings"
)

// Mode selects the kind of creative output requested.
type Mode string

// Supported generation modes. The string values are the ones the portfolio
// page sends.
const (
	ModeSlogans       Mode = "slogans"
	ModeElevatorPitch Mode = "elevator"
	ModeSocialHook    Mode = "social"
	ModePersonaAnswer Mode = "ask_me"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeSlogans, ModeElevatorPitch, ModeSocialHook, ModePersonaAnswer}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeSlogans, ModeElevatorPitch, ModeSocialHook, ModePersonaAnswer:
		return true
	}
	return false
}

// ParseMode converts a case-insensitive mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}
