package engine

import "github.com/pschuster/fianchetto/internal/chess"

// The four central squares: d4, d5, e4, e5.
var centreSquares = [4]chess.Square{
	{Row: 3, Col: 3}, {Row: 3, Col: 4},
	{Row: 4, Col: 3}, {Row: 4, Col: 4},
}

// The 12 squares forming the extended-centre ring around the inner four.
var extendedCentre = [12]chess.Square{
	{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 2, Col: 5},
	{Row: 3, Col: 2}, {Row: 3, Col: 5},
	{Row: 4, Col: 2}, {Row: 4, Col: 5},
	{Row: 5, Col: 2}, {Row: 5, Col: 3}, {Row: 5, Col: 4}, {Row: 5, Col: 5},
}

// pieceValue returns the standard material value in pawns. The king carries
// no material value; losing it is handled by the mate module.
func pieceValue(pt chess.PieceType) float64 {
	switch pt {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	}
	return 0
}

// Evaluate scores the board from aiColor's perspective by summing the
// enabled modules. Positional modules score White-relative and the aggregate
// is negated for Black; the draw penalty is perspective-independent and is
// applied after the flip.
func Evaluate(b *chess.Board, aiColor chess.Color, cfg *Config) float64 {
	var score float64
	if cfg.MateModule {
		score += evalMate(b, &cfg.Weights)
	}
	if cfg.MaterialModule {
		score += evalMaterial(b)
	}
	if cfg.CentreModule {
		score += evalCentreControl(b, &cfg.Weights)
	}
	if cfg.PassedPawnModule {
		score += evalPassedPawns(b, &cfg.Weights)
	}
	if aiColor == chess.Black {
		score = -score
	}
	if cfg.DrawPenaltyModule {
		score += evalDrawPenalty(b, &cfg.Weights)
	}
	return score
}

// Breakdown carries each module's signed contribution to the total.
type Breakdown struct {
	Mate        float64 `json:"mate"`
	Material    float64 `json:"material"`
	Centre      float64 `json:"centre"`
	PassedPawns float64 `json:"passedPawns"`
	DrawPenalty float64 `json:"drawPenalty"`
	Total       float64 `json:"total"`
}

func EvaluateBreakdown(b *chess.Board, aiColor chess.Color, cfg *Config) Breakdown {
	flip := 1.0
	if aiColor == chess.Black {
		flip = -1.0
	}
	var bd Breakdown
	if cfg.MateModule {
		bd.Mate = evalMate(b, &cfg.Weights) * flip
	}
	if cfg.MaterialModule {
		bd.Material = evalMaterial(b) * flip
	}
	if cfg.CentreModule {
		bd.Centre = evalCentreControl(b, &cfg.Weights) * flip
	}
	if cfg.PassedPawnModule {
		bd.PassedPawns = evalPassedPawns(b, &cfg.Weights) * flip
	}
	if cfg.DrawPenaltyModule {
		bd.DrawPenalty = evalDrawPenalty(b, &cfg.Weights)
	}
	bd.Total = bd.Mate + bd.Material + bd.Centre + bd.PassedPawns + bd.DrawPenalty
	return bd
}

// evalMaterial sums piece values, White minus Black.
func evalMaterial(b *chess.Board) float64 {
	var score float64
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.Squares[r][c]
			if p == nil {
				continue
			}
			v := pieceValue(p.Type)
			if p.Color == chess.White {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}

// evalCentreControl rewards attacking and occupying the four central squares
// and attacking the extended-centre ring (no occupancy term for the ring).
func evalCentreControl(b *chess.Board, w *Weights) float64 {
	var score float64
	for _, sq := range centreSquares {
		if b.IsSquareAttackedBy(sq, chess.White) {
			score += w.CentreAttack
		}
		if b.IsSquareAttackedBy(sq, chess.Black) {
			score -= w.CentreAttack
		}
		if p := b.Squares[sq.Row][sq.Col]; p != nil {
			if p.Color == chess.White {
				score += w.CentreOccupy
			} else {
				score -= w.CentreOccupy
			}
		}
	}
	for _, sq := range extendedCentre {
		if b.IsSquareAttackedBy(sq, chess.White) {
			score += w.ExtendedCentreAttack
		}
		if b.IsSquareAttackedBy(sq, chess.Black) {
			score -= w.ExtendedCentreAttack
		}
	}
	return score
}

// evalMate assigns ±10000 to checkmate, exactly 0 to stalemate (a neutral
// draw, not a loss) and a small penalty to the side in check with moves
// still available.
func evalMate(b *chess.Board, w *Weights) float64 {
	inCheck := b.IsInCheck(b.Turn)
	noMoves := b.GameOver || len(b.GenerateLegalMoves(b.Turn)) == 0

	switch {
	case noMoves && inCheck:
		if b.Turn == chess.White {
			return -10000
		}
		return 10000
	case noMoves:
		return 0
	case inCheck:
		if b.Turn == chess.White {
			return -w.CheckPenalty
		}
		return w.CheckPenalty
	}
	return 0
}

// isPassedPawn reports whether no enemy pawn occupies the pawn's file or the
// two adjacent files on any rank between the pawn and its promotion rank.
func isPassedPawn(b *chess.Board, row, col int, color chess.Color) bool {
	step := 1
	endRow := 7
	if color == chess.Black {
		step = -1
		endRow = 0
	}
	enemy := color.Opposite()
	for r := row + step; (step > 0 && r <= endRow) || (step < 0 && r >= endRow); r += step {
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c > 7 {
				continue
			}
			if p := b.Squares[r][c]; p != nil && p.Color == enemy && p.Type == chess.Pawn {
				return false
			}
		}
	}
	return true
}

// evalPassedPawns rewards passed pawns with a score that grows quadratically
// as they advance; non-passed pawns get a small linear advancement bonus.
// Advancement is ranks moved from the starting rank, 0-5.
func evalPassedPawns(b *chess.Board, w *Weights) float64 {
	var score float64
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Squares[row][col]
			if p == nil || p.Type != chess.Pawn {
				continue
			}
			sign := 1.0
			advancement := float64(row) - 1
			if p.Color == chess.Black {
				sign = -1.0
				advancement = 6 - float64(row)
			}
			if isPassedPawn(b, row, col, p.Color) {
				score += sign * (w.PassedPawnBase + advancement*advancement*w.PassedPawnQuadratic)
			} else {
				score += sign * advancement * w.PawnAdvance
			}
		}
	}
	return score
}

// evalDrawPenalty subtracts a flat penalty once the current position has
// occurred at least twice in history, steering the search away from
// repetitions before they become a forced draw.
func evalDrawPenalty(b *chess.Board, w *Weights) float64 {
	current := b.Hash()
	count := 0
	for _, h := range b.History {
		if h == current {
			count++
		}
	}
	if count >= 2 {
		return -w.RepeatPenalty
	}
	return 0
}
