// Elo estimation harness: plays a set of engine configurations against a
// UCI engine (Stockfish by default) and reports an Elo difference per
// configuration from the match score.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"

	core "github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/engine"
)

const (
	maxMoves       = 200
	gamesPerConfig = 10
)

type testConfig struct {
	label  string
	config engine.Config
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
	}
}

func run() error {
	var enginePath = flag.String("engine", "stockfish", "path to a UCI engine binary")
	var skill = flag.Int("skill", 0, "engine Skill Level option")
	var movetime = flag.Int("movetime", 50, "engine search time per move in milliseconds")
	flag.Parse()

	eng, err := uci.New(*enginePath)
	if err != nil {
		return fmt.Errorf("failed to start engine %q: %w", *enginePath, err)
	}
	defer eng.Close()

	setSkill := uci.CmdSetOption{Name: "Skill Level", Value: strconv.Itoa(*skill)}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, setSkill); err != nil {
		return fmt.Errorf("engine initialization failed: %w", err)
	}

	fmt.Printf("=== Elo estimation vs %s (skill %d, %dms/move) ===\n\n", *enginePath, *skill, *movetime)

	var configs = makeConfigs()
	moveTime := time.Duration(*movetime) * time.Millisecond

	for _, tc := range configs {
		var wins, draws, losses int
		for i := 0; i < gamesPerConfig; i++ {
			ourColor := core.White
			if i%2 == 1 {
				ourColor = core.Black
			}
			score, err := playGame(eng, &tc.config, ourColor, moveTime)
			if err != nil {
				return err
			}
			switch score {
			case 1:
				wins++
			case 0:
				losses++
			default:
				draws++
			}
		}

		score := (float64(wins) + 0.5*float64(draws)) / float64(gamesPerConfig)
		fmt.Printf("%-20s W %d / D %d / L %d  score %.2f  elo %+.0f\n",
			tc.label, wins, draws, losses, score, eloDiff(score))
	}
	return nil
}

func makeConfigs() []testConfig {
	var allOn = engine.NewConfig()
	allOn.SetDepth(2)
	allOn.AutoDeepen = false

	var matCentre = engine.NewConfig()
	matCentre.SetDepth(2)
	matCentre.AutoDeepen = false
	matCentre.SetModule("passed_pawns", false)

	var random = engine.NewConfig()
	random.SetDepth(1)
	random.AutoDeepen = false
	random.SetModule("mate", false)
	random.SetModule("material", false)
	random.SetModule("centre", false)
	random.SetModule("passed_pawns", false)

	return []testConfig{
		{"d2 all-on", allOn},
		{"d2 mat+centre", matCentre},
		{"d1 random", random},
	}
}

// playGame plays one game against the UCI engine and returns the score from
// our side's point of view: 1 win, 0.5 draw, 0 loss. The mirror game tracks
// the position for the engine; our board stays authoritative for legality
// and game end.
func playGame(eng *uci.Engine, config *engine.Config, ourColor core.Color, moveTime time.Duration) (float64, error) {
	if err := eng.Run(uci.CmdUCINewGame); err != nil {
		return 0, err
	}

	var board = core.NewBoard()
	var mirror = chess.NewGame()

	for i := 0; i < maxMoves; i++ {
		if board.GameOver {
			break
		}

		var uciMove string
		if board.Turn == ourColor {
			result, ok := engine.PickMove(board, config)
			if !ok {
				break
			}
			uciMove = result.Move.String()
			board.ApplyMove(result.Move)
		} else {
			pos := uci.CmdPosition{Position: mirror.Position()}
			search := uci.CmdGo{MoveTime: moveTime}
			if err := eng.Run(pos, search); err != nil {
				return 0, err
			}
			best := eng.SearchResults().BestMove
			if best == nil {
				break
			}
			uciMove = best.String()
			move, ok := core.MoveFromUCI(uciMove)
			if !ok {
				return 0, fmt.Errorf("engine returned unparseable move %q", uciMove)
			}
			if !isLegal(board, move) {
				return 0, fmt.Errorf("engine returned illegal move %q", uciMove)
			}
			board.ApplyMove(move)
		}

		m, err := chess.UCINotation{}.Decode(mirror.Position(), uciMove)
		if err != nil {
			return 0, fmt.Errorf("failed to mirror move %q: %w", uciMove, err)
		}
		if err := mirror.Move(m); err != nil {
			return 0, fmt.Errorf("failed to mirror move %q: %w", uciMove, err)
		}
	}

	switch {
	case board.Result == core.ResultWhiteWins && ourColor == core.White,
		board.Result == core.ResultBlackWins && ourColor == core.Black:
		return 1, nil
	case board.Result == core.ResultWhiteWins || board.Result == core.ResultBlackWins:
		return 0, nil
	}
	return 0.5, nil // drawn or hit the move limit
}

func isLegal(board *core.Board, move core.Move) bool {
	for _, m := range board.GenerateLegalMoves(board.Turn) {
		if m == move {
			return true
		}
	}
	return false
}

// eloDiff converts a match score in (0,1) to an Elo difference, clamped to
// ±999 for scores at or beyond the ends of the scale.
func eloDiff(score float64) float64 {
	return math.Max(-999, math.Min(999, -400*math.Log10(1/score-1)))
}
