package engine

// Weights are the tunable evaluation parameters. The defaults come from
// AI-vs-AI grid-search runs (cmd/simulate) cross-checked against a reference
// engine (cmd/elo).
type Weights struct {
	// Centre control module.
	CentreAttack         float64 // per d4/d5/e4/e5 square attacked
	CentreOccupy         float64 // per piece standing on a centre square
	ExtendedCentreAttack float64 // per c3-f3/c6-f6 ring square attacked

	// Passed pawn module.
	PassedPawnBase      float64 // flat bonus for a passed pawn
	PassedPawnQuadratic float64 // scaled by advancement squared
	PawnAdvance         float64 // linear bonus for non-passed pawns

	// Mate/check module.
	CheckPenalty float64 // applied to the side in check but not mated

	// Draw avoidance module.
	RepeatPenalty float64 // flat penalty once the position has repeated
}

func DefaultWeights() Weights {
	return Weights{
		CentreAttack:         0.15,
		CentreOccupy:         0.2,
		ExtendedCentreAttack: 0.3,
		PassedPawnBase:       0.2,
		PassedPawnQuadratic:  0.3,
		PawnAdvance:          0.0,
		CheckPenalty:         0.5,
		RepeatPenalty:        10.0,
	}
}

// Config selects which evaluation modules run, the nominal search depth and
// the auto-deepen behavior. It is owned by the caller and never mutated by
// the evaluator or the search.
type Config struct {
	MateModule        bool
	MaterialModule    bool
	CentreModule      bool
	PassedPawnModule  bool
	DrawPenaltyModule bool

	// Depth is in full moves; the search converts it to plies (depth × 2).
	Depth      int
	AutoDeepen bool

	Weights Weights
}

func NewConfig() Config {
	return Config{
		MateModule:        true,
		MaterialModule:    true,
		CentreModule:      true,
		PassedPawnModule:  true,
		DrawPenaltyModule: true,
		Depth:             2,
		AutoDeepen:        true,
		Weights:           DefaultWeights(),
	}
}

// SetModule toggles an evaluation module by name. Unknown names are ignored.
func (c *Config) SetModule(name string, enabled bool) {
	switch name {
	case "mate":
		c.MateModule = enabled
	case "material":
		c.MaterialModule = enabled
	case "centre":
		c.CentreModule = enabled
	case "passed_pawns":
		c.PassedPawnModule = enabled
	case "draw_penalty":
		c.DrawPenaltyModule = enabled
	}
}

// SetDepth clamps the depth to the supported range [1, 3].
func (c *Config) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	if depth > 3 {
		depth = 3
	}
	c.Depth = depth
}
