// Package death decides whether a player death counts as a hardcore death.
//
// Classification is a pure function of a Context snapshot built by the host
// at the moment of death. It never reads live game state, never mutates
// anything and never panics, so it can run inside a death callback while the
// host is tearing its own state down.
package death

// Context is an immutable snapshot of the facts relevant to a death.
type Context struct {
	HardcoreEnabled bool        // Whether the active file is a hardcore file
	LevelSetID      string      // Level set of the current area (e.g. "Celeste")
	AreaID          int         // Area (chapter) number inside the level set
	LevelID         string      // Room name inside the area
	PlayerState     PlayerState // Control state when the player died

	// Presentation-only; ignored by classification.
	AreaName string
	AreaMode AreaMode
}

// Exemption is a named rule that makes a death not count as hardcore.
type Exemption struct {
	Name  string
	Match func(ctx Context) bool
}

// noControlStates are states in which a death cannot be blamed on the player.
var noControlStates = map[PlayerState]bool{
	StateDummy:             true,
	StateIntroWalk:         true,
	StateIntroJump:         true,
	StateIntroRespawn:      true,
	StateIntroWakeUp:       true,
	StateFrozen:            true,
	StateReflectionFall:    true,
	StateTempleFall:        true,
	StateCassetteFly:       true,
	StateIntroMoonJump:     true,
	StateIntroThinkForABit: true,
}

// IsNoControl reports whether the state is one without player control.
func IsNoControl(s PlayerState) bool {
	return noControlStates[s]
}

// Built-in exemptions, evaluated in this order.
var (
	NoControlExemption = Exemption{
		Name: "no-control-state",
		Match: func(ctx Context) bool {
			return IsNoControl(ctx.PlayerState)
		},
	}

	// Farewell's moon room kills the player as part of a scripted sequence.
	FarewellMoonExemption = Exemption{
		Name: "farewell-moon-jump",
		Match: func(ctx Context) bool {
			return ctx.LevelSetID == "Celeste" && ctx.AreaID == 10 && ctx.LevelID == "j-17"
		},
	}
)

// Classifier evaluates an ordered list of exemptions.
type Classifier struct {
	exemptions []Exemption
}

// NewClassifier creates a classifier with the given exemptions.
func NewClassifier(exemptions ...Exemption) *Classifier {
	ex := make([]Exemption, len(exemptions))
	copy(ex, exemptions)
	return &Classifier{exemptions: ex}
}

// DefaultClassifier returns a classifier with the built-in exemptions.
func DefaultClassifier() *Classifier {
	return NewClassifier(NoControlExemption, FarewellMoonExemption)
}

// Classify reports whether the death is a qualifying hardcore death.
func (c *Classifier) Classify(ctx Context) bool {
	hardcore, _ := c.Verdict(ctx)
	return hardcore
}

// Verdict classifies the death and names the rule that decided it:
// "hardcore-disabled", an exemption name, or "" for a qualifying death.
func (c *Classifier) Verdict(ctx Context) (hardcore bool, reason string) {
	if !ctx.HardcoreEnabled {
		return false, "hardcore-disabled"
	}

	for _, ex := range c.exemptions {
		if ex.Match != nil && safeMatch(ex, ctx) {
			return false, ex.Name
		}
	}

	return true, ""
}

// Exemptions returns the names of the exemptions in evaluation order.
func (c *Classifier) Exemptions() []string {
	names := make([]string, len(c.exemptions))
	for i, ex := range c.exemptions {
		names[i] = ex.Name
	}
	return names
}

// safeMatch runs a predicate, treating a panic as "no match".
func safeMatch(ex Exemption, ctx Context) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return ex.Match(ctx)
}

var defaultClassifier = DefaultClassifier()

// Classify classifies a death using the built-in exemptions.
func Classify(ctx Context) bool {
	return defaultClassifier.Classify(ctx)
}
