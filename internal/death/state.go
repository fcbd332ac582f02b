package death

import (
	"fmt"
	"strings"
)

// PlayerState is the player's control state at the moment of death.
type PlayerState int

const (
	StateNormal PlayerState = iota
	StateClimb
	StateDash
	StateSwim
	StateBoost
	StateRedDash
	StateHitSquash
	StateLaunch
	StatePickup
	StateDreamDash
	StateSummitLaunch
	StateDummy
	StateIntroWalk
	StateIntroJump
	StateIntroRespawn
	StateIntroWakeUp
	StateBirdDashTutorial
	StateFrozen
	StateReflectionFall
	StateStarFly
	StateTempleFall
	StateCassetteFly
	StateAttract
	StateIntroMoonJump
	StateFlingBird
	StateIntroThinkForABit

	stateCount
)

var stateNames = [stateCount]string{
	StateNormal:            "normal",
	StateClimb:             "climb",
	StateDash:              "dash",
	StateSwim:              "swim",
	StateBoost:             "boost",
	StateRedDash:           "red-dash",
	StateHitSquash:         "hit-squash",
	StateLaunch:            "launch",
	StatePickup:            "pickup",
	StateDreamDash:         "dream-dash",
	StateSummitLaunch:      "summit-launch",
	StateDummy:             "dummy",
	StateIntroWalk:         "intro-walk",
	StateIntroJump:         "intro-jump",
	StateIntroRespawn:      "intro-respawn",
	StateIntroWakeUp:       "intro-wake-up",
	StateBirdDashTutorial:  "bird-dash-tutorial",
	StateFrozen:            "frozen",
	StateReflectionFall:    "reflection-fall",
	StateStarFly:           "star-fly",
	StateTempleFall:        "temple-fall",
	StateCassetteFly:       "cassette-fly",
	StateAttract:           "attract",
	StateIntroMoonJump:     "intro-moon-jump",
	StateFlingBird:         "fling-bird",
	StateIntroThinkForABit: "intro-think-for-a-bit",
}

// String returns the kebab-case name of the state.
func (s PlayerState) String() string {
	if s < 0 || s >= stateCount {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Valid reports whether s is a known state.
func (s PlayerState) Valid() bool {
	return s >= 0 && s < stateCount
}

// Next returns the following state, wrapping around.
func (s PlayerState) Next() PlayerState {
	if !s.Valid() {
		return StateNormal
	}
	return (s + 1) % stateCount
}

// ParseState converts a state name back into a PlayerState.
func ParseState(name string) (PlayerState, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == name {
			return PlayerState(i), nil
		}
	}
	return StateNormal, fmt.Errorf("death: unknown player state %q", name)
}

// States returns every known state in order.
func States() []PlayerState {
	out := make([]PlayerState, 0, stateCount)
	for s := PlayerState(0); s < stateCount; s++ {
		out = append(out, s)
	}
	return out
}

// AreaMode is the chapter side being played.
type AreaMode int

const (
	ModeASide AreaMode = iota
	ModeBSide
	ModeCSide
)

// String returns the display label of the side.
func (m AreaMode) String() string {
	switch m {
	case ModeBSide:
		return "B-Side"
	case ModeCSide:
		return "C-Side"
	default:
		return "A-Side"
	}
}

// ParseAreaMode converts "a-side", "b-side" or "c-side" (or the display
// labels) into an AreaMode.
func ParseAreaMode(s string) (AreaMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a", "a-side":
		return ModeASide, nil
	case "b", "b-side":
		return ModeBSide, nil
	case "c", "c-side":
		return ModeCSide, nil
	default:
		return ModeASide, fmt.Errorf("death: unknown area mode %q", s)
	}
}
