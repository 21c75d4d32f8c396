package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pschuster/fianchetto/internal/chess"
)

// minEvals is the node-evaluation budget auto-deepen tries to reach before
// accepting a result; maxPlies caps how far it will escalate.
const (
	minEvals uint64 = 100_000
	maxPlies        = 6
)

// scoreTolerance bounds how close two root scores must be to count as tied.
const scoreTolerance = 0.001

// Result carries the chosen move and the number of static evaluations the
// search performed. The count is diagnostic only.
type Result struct {
	Move  chess.Move
	Evals uint64
}

// Rand is the randomness source for final tie-breaking; tests inject a
// deterministic one.
type Rand interface {
	Float64() float64
}

type processRand struct{}

func (processRand) Float64() float64 { return rand.Float64() }

type scoredMove struct {
	move  chess.Move
	score float64
}

// movePriority ranks a move for search ordering and tie-breaking: promotions
// highest (more so for more valuable pieces), then captures by MVV-LVA, then
// quiet moves at 0.
func movePriority(b *chess.Board, m chess.Move) int {
	score := 0
	if m.Promotion != "" {
		score += 900 + int(pieceValue(m.Promotion))
	}
	if victim := b.Squares[m.To.Row][m.To.Col]; victim != nil {
		attacker := 0
		if p := b.Squares[m.From.Row][m.From.Col]; p != nil {
			attacker = int(pieceValue(p.Type))
		}
		score += 100 + int(pieceValue(victim.Type))*10 - attacker
	}
	return score
}

func orderMoves(b *chess.Board, moves []chess.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return movePriority(b, moves[i]) > movePriority(b, moves[j])
	})
}

// negamax searches to the given ply depth with alpha-beta pruning. Scores
// are always from the perspective of the side to move; each recursion
// negates the child's score. Leaves (depth 0, game over, or no legal moves)
// call Evaluate and count one evaluation.
func negamax(b *chess.Board, depth int, alpha, beta float64, cfg *Config, evals *uint64) float64 {
	if depth <= 0 || b.GameOver {
		*evals++
		return Evaluate(b, b.Turn, cfg)
	}
	moves := b.GenerateLegalMoves(b.Turn)
	if len(moves) == 0 {
		*evals++
		return Evaluate(b, b.Turn, cfg)
	}
	orderMoves(b, moves)

	best := math.Inf(-1)
	for _, m := range moves {
		clone := b.Clone()
		clone.ApplyMove(m)
		score := -negamax(clone, depth-1, -beta, -alpha, cfg, evals)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// searchRoot scores every candidate with a full window; the complete score
// list is needed for the tie-break. The first ply is consumed by applying
// the candidate, so negamax runs at plies-1. Plies below 1 degrade to a
// depth-0 evaluation of each candidate.
func searchRoot(b *chess.Board, moves []chess.Move, plies int, cfg *Config) ([]scoredMove, uint64) {
	var evals uint64
	childDepth := plies - 1
	if childDepth < 0 {
		childDepth = 0
	}
	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		clone := b.Clone()
		clone.ApplyMove(m)
		score := -negamax(clone, childDepth, math.Inf(-1), math.Inf(1), cfg, &evals)
		scored = append(scored, scoredMove{move: m, score: score})
	}
	return scored, evals
}

// PickMove selects a move for the side to move, using the process-wide
// random generator for tie-breaking. ok is false when no legal move exists;
// the caller interprets that as a terminal state already reflected on the
// board, not an error.
func PickMove(b *chess.Board, cfg *Config) (Result, bool) {
	return PickMoveRand(b, cfg, processRand{})
}

// PickMoveRand is PickMove with an injectable randomness source.
func PickMoveRand(b *chess.Board, cfg *Config, rnd Rand) (Result, bool) {
	moves := b.GenerateLegalMoves(b.Turn)
	if len(moves) == 0 {
		return Result{}, false
	}
	orderMoves(b, moves)

	plies := cfg.Depth * 2
	scored, evals := searchRoot(b, moves, plies, cfg)

	// Re-run the whole search one ply deeper until the evaluation budget is
	// met; each pass replaces the previous scores, never accumulates.
	for cfg.AutoDeepen && evals < minEvals && plies < maxPlies {
		plies++
		scored, evals = searchRoot(b, moves, plies, cfg)
	}

	maxScore := math.Inf(-1)
	for _, s := range scored {
		if s.score > maxScore {
			maxScore = s.score
		}
	}
	var best []scoredMove
	for _, s := range scored {
		if math.Abs(s.score-maxScore) < scoreTolerance {
			best = append(best, s)
		}
	}

	// Among tied scores keep only the highest-priority moves (queen
	// promotion over rook promotion), then pick uniformly at random.
	maxPri := movePriority(b, best[0].move)
	for _, s := range best[1:] {
		if pri := movePriority(b, s.move); pri > maxPri {
			maxPri = pri
		}
	}
	var top []scoredMove
	for _, s := range best {
		if movePriority(b, s.move) == maxPri {
			top = append(top, s)
		}
	}

	idx := int(rnd.Float64() * float64(len(top)))
	if idx >= len(top) {
		idx = len(top) - 1
	}
	return Result{Move: top[idx].move, Evals: evals}, true
}
