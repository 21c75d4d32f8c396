// Weight grid-search harness: plays each single-weight variation against a
// baseline configuration, ranks them by net wins, then combines the best
// value per category and checks the combination against the baseline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/engine"
)

const (
	maxMoves        = 150
	gamesPerMatchup = 10
	simDepth        = 1
)

type variation struct {
	label  string
	config engine.Config
}

type matchResult struct {
	label  string
	wins   int
	losses int
	draws  int
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
	}
}

func run() error {
	var concurrency = flag.Int("concurrency", runtime.NumCPU(), "number of concurrent matchups")
	flag.Parse()

	fmt.Println("=== Chess AI Weight Optimization ===")
	fmt.Printf("Games per matchup: %d, max moves per game: %d, depth: %d\n\n", gamesPerMatchup, maxMoves, simDepth)

	var baseline = baseConfig()
	var variations = makeVariations()

	fmt.Println("--- Phase 1: Each variation vs baseline ---")
	fmt.Println()

	results, err := runMatchups(context.Background(), variations, baseline, *concurrency)
	if err != nil {
		return err
	}

	type ranked struct {
		label string
		net   int
	}
	var scores []ranked
	for _, v := range variations {
		res := results[v.label]
		scores = append(scores, ranked{label: v.label, net: res.wins - res.losses})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].net > scores[j].net })

	fmt.Println("\n--- Phase 1 Rankings (net wins vs baseline) ---")
	fmt.Println()
	for _, s := range scores {
		indicator := " "
		if s.net > 0 {
			indicator = "+"
		}
		fmt.Printf("  %s%3d  %s\n", indicator, s.net, s.label)
	}

	// Phase 2: combine the best value per weight category.
	fmt.Println("\n--- Phase 2: Combined best weights ---")
	fmt.Println()

	categories := []struct {
		name   string
		labels []string
	}{
		{"centre_atk", []string{"centre_atk=0.15", "centre_atk=0.5", "centre_atk=0.7"}},
		{"centre_occ", []string{"centre_occ=0.2", "centre_occ=0.6", "centre_occ=0.8"}},
		{"ext_centre", []string{"ext_centre=0.0", "ext_centre=0.2", "ext_centre=0.3"}},
		{"pp_base", []string{"pp_base=0.2", "pp_base=0.8", "pp_base=1.2"}},
		{"pp_quad", []string{"pp_quad=0.08", "pp_quad=0.3", "pp_quad=0.5"}},
		{"pawn_adv", []string{"pawn_adv=0.0", "pawn_adv=0.1", "pawn_adv=0.2"}},
		{"rep_pen", []string{"rep_pen=0.5", "rep_pen=1.0", "rep_pen=3.0"}},
	}

	var bestWeights = engine.DefaultWeights()
	fmt.Println("  Best per category (vs baseline):")
	for _, cat := range categories {
		bestLabel := "baseline"
		bestNet := 0
		for _, label := range cat.labels {
			for _, s := range scores {
				if s.label == label && s.net > bestNet {
					bestNet = s.net
					bestLabel = label
				}
			}
		}
		if bestLabel != "baseline" {
			fmt.Printf("    %s: %s (net %+d)\n", cat.name, bestLabel, bestNet)
			applyWeight(&bestWeights, bestLabel)
		} else {
			fmt.Printf("    %s: baseline (no improvement found)\n", cat.name)
		}
	}

	var combined = baseConfig()
	combined.Weights = bestWeights

	fmt.Printf("\n  Combined weights: %+v\n", bestWeights)
	fmt.Println("\n  Testing combined vs baseline...")
	fmt.Println()

	final := runMatchup("combined", &combined, "baseline", &baseline)

	fmt.Println("\n--- Final Result ---")
	fmt.Println()
	fmt.Printf("  Combined wins: %d, Baseline wins: %d, Draws: %d\n", final.wins, final.losses, final.draws)

	fmt.Println("\n--- Recommended weights ---")
	fmt.Println()
	switch {
	case final.wins > final.losses:
		fmt.Println("  The combined weights are BETTER than baseline:")
	case final.wins < final.losses:
		fmt.Println("  The combined weights are WORSE than baseline, keeping defaults:")
		fmt.Printf("  %+v\n", engine.DefaultWeights())
		return nil
	default:
		fmt.Println("  No significant difference; combined weights:")
	}
	fmt.Printf("  %+v\n", bestWeights)
	return nil
}

func baseConfig() engine.Config {
	var config = engine.NewConfig()
	config.SetDepth(simDepth)
	config.AutoDeepen = false
	return config
}

func makeConfig(mutate func(*engine.Weights)) engine.Config {
	var config = baseConfig()
	mutate(&config.Weights)
	return config
}

func makeVariations() []variation {
	return []variation{
		{"centre_atk=0.15", makeConfig(func(w *engine.Weights) { w.CentreAttack = 0.15 })},
		{"centre_atk=0.5", makeConfig(func(w *engine.Weights) { w.CentreAttack = 0.5 })},
		{"centre_atk=0.7", makeConfig(func(w *engine.Weights) { w.CentreAttack = 0.7 })},
		{"centre_occ=0.2", makeConfig(func(w *engine.Weights) { w.CentreOccupy = 0.2 })},
		{"centre_occ=0.6", makeConfig(func(w *engine.Weights) { w.CentreOccupy = 0.6 })},
		{"centre_occ=0.8", makeConfig(func(w *engine.Weights) { w.CentreOccupy = 0.8 })},
		{"ext_centre=0.0", makeConfig(func(w *engine.Weights) { w.ExtendedCentreAttack = 0.0 })},
		{"ext_centre=0.2", makeConfig(func(w *engine.Weights) { w.ExtendedCentreAttack = 0.2 })},
		{"ext_centre=0.3", makeConfig(func(w *engine.Weights) { w.ExtendedCentreAttack = 0.3 })},
		{"pp_base=0.2", makeConfig(func(w *engine.Weights) { w.PassedPawnBase = 0.2 })},
		{"pp_base=0.8", makeConfig(func(w *engine.Weights) { w.PassedPawnBase = 0.8 })},
		{"pp_base=1.2", makeConfig(func(w *engine.Weights) { w.PassedPawnBase = 1.2 })},
		{"pp_quad=0.08", makeConfig(func(w *engine.Weights) { w.PassedPawnQuadratic = 0.08 })},
		{"pp_quad=0.3", makeConfig(func(w *engine.Weights) { w.PassedPawnQuadratic = 0.3 })},
		{"pp_quad=0.5", makeConfig(func(w *engine.Weights) { w.PassedPawnQuadratic = 0.5 })},
		{"pawn_adv=0.0", makeConfig(func(w *engine.Weights) { w.PawnAdvance = 0.0 })},
		{"pawn_adv=0.1", makeConfig(func(w *engine.Weights) { w.PawnAdvance = 0.1 })},
		{"pawn_adv=0.2", makeConfig(func(w *engine.Weights) { w.PawnAdvance = 0.2 })},
		{"rep_pen=0.5", makeConfig(func(w *engine.Weights) { w.RepeatPenalty = 0.5 })},
		{"rep_pen=1.0", makeConfig(func(w *engine.Weights) { w.RepeatPenalty = 1.0 })},
		{"rep_pen=3.0", makeConfig(func(w *engine.Weights) { w.RepeatPenalty = 3.0 })},
	}
}

func applyWeight(w *engine.Weights, label string) {
	switch label {
	case "centre_atk=0.15":
		w.CentreAttack = 0.15
	case "centre_atk=0.5":
		w.CentreAttack = 0.5
	case "centre_atk=0.7":
		w.CentreAttack = 0.7
	case "centre_occ=0.2":
		w.CentreOccupy = 0.2
	case "centre_occ=0.6":
		w.CentreOccupy = 0.6
	case "centre_occ=0.8":
		w.CentreOccupy = 0.8
	case "ext_centre=0.0":
		w.ExtendedCentreAttack = 0.0
	case "ext_centre=0.2":
		w.ExtendedCentreAttack = 0.2
	case "ext_centre=0.3":
		w.ExtendedCentreAttack = 0.3
	case "pp_base=0.2":
		w.PassedPawnBase = 0.2
	case "pp_base=0.8":
		w.PassedPawnBase = 0.8
	case "pp_base=1.2":
		w.PassedPawnBase = 1.2
	case "pp_quad=0.08":
		w.PassedPawnQuadratic = 0.08
	case "pp_quad=0.3":
		w.PassedPawnQuadratic = 0.3
	case "pp_quad=0.5":
		w.PassedPawnQuadratic = 0.5
	case "pawn_adv=0.0":
		w.PawnAdvance = 0.0
	case "pawn_adv=0.1":
		w.PawnAdvance = 0.1
	case "pawn_adv=0.2":
		w.PawnAdvance = 0.2
	case "rep_pen=0.5":
		w.RepeatPenalty = 0.5
	case "rep_pen=1.0":
		w.RepeatPenalty = 1.0
	case "rep_pen=3.0":
		w.RepeatPenalty = 3.0
	}
}

// runMatchups fans the matchups out over a worker pool; every variation
// plays the baseline.
func runMatchups(ctx context.Context, variations []variation, baseline engine.Config, concurrency int) (map[string]matchResult, error) {
	g, ctx := errgroup.WithContext(ctx)

	var jobs = make(chan variation)
	var out = make(chan matchResult)

	g.Go(func() error {
		defer close(jobs)
		for _, v := range variations {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- v:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for v := range jobs {
				res := runMatchup(v.label, &v.config, "baseline", &baseline)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case out <- res:
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(out)
		return nil
	})

	var results = make(map[string]matchResult)
	var done = make(chan struct{})
	go func() {
		for res := range out {
			results[res.label] = res
		}
		close(done)
	}()

	if err := g.Wait(); err != nil {
		return nil, err
	}
	<-done
	return results, nil
}

// runMatchup plays half the games with A as White and half with the colors
// swapped, then reports wins from A's point of view.
func runMatchup(labelA string, configA *engine.Config, labelB string, configB *engine.Config) matchResult {
	var aWins, bWins, draws int
	half := gamesPerMatchup / 2

	for i := 0; i < half; i++ {
		switch playGame(configA, configB) {
		case "white":
			aWins++
		case "black":
			bWins++
		default:
			draws++
		}
	}
	for i := 0; i < half; i++ {
		switch playGame(configB, configA) {
		case "white":
			bWins++
		case "black":
			aWins++
		default:
			draws++
		}
	}

	fmt.Printf("  %s vs %s: %s wins %d, %s wins %d, draws %d (out of %d)\n",
		labelA, labelB, labelA, aWins, labelB, bWins, draws, gamesPerMatchup)

	return matchResult{label: labelA, wins: aWins, losses: bWins, draws: draws}
}

func playGame(whiteConfig, blackConfig *engine.Config) string {
	var board = chess.NewBoard()
	for i := 0; i < maxMoves; i++ {
		if board.GameOver {
			break
		}
		config := whiteConfig
		if board.Turn == chess.Black {
			config = blackConfig
		}
		result, ok := engine.PickMove(board, config)
		if !ok {
			break
		}
		board.ApplyMove(result.Move)
	}

	switch board.Result {
	case chess.ResultWhiteWins:
		return "white"
	case chess.ResultBlackWins:
		return "black"
	}
	return "draw" // drawn or hit the move limit
}
