package main

import (
	"flag"
	"log"

	"github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/engine"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
	}
}

func run() error {
	var depth = flag.Int("depth", 2, "search depth in full moves")
	var maxMoves = flag.Int("maxmoves", 60, "move cap before the game is abandoned")
	var deepen = flag.Bool("deepen", false, "auto-deepen until the evaluation budget is met")
	flag.Parse()

	var config = engine.NewConfig()
	config.SetDepth(*depth)
	config.AutoDeepen = *deepen

	var board = chess.NewBoard()
	var moveCount int
	for !board.GameOver && moveCount < *maxMoves {
		result, ok := engine.PickMove(board, &config)
		if !ok {
			break
		}
		board.ApplyMove(result.Move)
		moveCount++
	}

	var result = board.Result
	if result == "" {
		result = "ongoing"
	}
	log.Printf("game over after %d moves: %s", moveCount, result)
	return nil
}
