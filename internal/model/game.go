package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/pschuster/fianchetto/internal/chess"
	"github.com/pschuster/fianchetto/internal/engine"
	"github.com/pschuster/fianchetto/internal/ws"
)

var (
	ErrGameOver    = errors.New("game is already over")
	ErrIllegalMove = errors.New("illegal move")
)

// GameConnections holds the websocket observers for a specific game.
type GameConnections struct {
	connections map[string]*websocket.Conn // clientID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game pairs one board with an AI configuration and its observers. All
// mutation flows through MakeMove and MakeAIMove; observers receive a fresh
// snapshot after every applied move.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *chess.Board
	config      engine.Config
	lastEvals   uint64
	connections *GameConnections
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		board:       chess.NewBoard(),
		config:      engine.NewConfig(),
		connections: NewGameConnections(),
	}
}

// MoveRequest is a boundary move: explicit from/to squares plus an optional
// promotion piece, matched against the generated legal list.
type MoveRequest struct {
	From      chess.Square    `json:"from"`
	To        chess.Square    `json:"to"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

// ConfigRequest adjusts the AI configuration: an evaluation module toggle
// by name and/or a new search depth.
type ConfigRequest struct {
	Module  string `json:"module,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
	Depth   *int   `json:"depth,omitempty"`
}

// MakeMove finds the requested move in the legal list and applies it. The
// board is left untouched when the game is over or no legal move matches.
func (g *Game) MakeMove(req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.GameOver {
		return ErrGameOver
	}
	for _, m := range g.board.GenerateLegalMoves(g.board.Turn) {
		if m.From == req.From && m.To == req.To && m.Promotion == req.Promotion {
			g.board.ApplyMove(m)
			go g.broadcastState()
			return nil
		}
	}
	return ErrIllegalMove
}

// MakeAIMove runs the search and applies the chosen move. A finished game
// is a silent no-op.
func (g *Game) MakeAIMove() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.GameOver {
		return nil
	}
	result, ok := engine.PickMove(g.board, &g.config)
	if !ok {
		return nil
	}
	g.lastEvals = result.Evals
	g.board.ApplyMove(result.Move)
	go g.broadcastState()
	return nil
}

// Hint runs a depth-clamped search without mutating the game.
func (g *Game) Hint(depth int) (chess.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg := g.config
	cfg.SetDepth(depth)
	result, ok := engine.PickMove(g.board, &cfg)
	if !ok {
		return chess.Move{}, false
	}
	return result.Move, true
}

// EvalBreakdown returns each module's contribution for the current position,
// from the perspective of the side to move.
func (g *Game) EvalBreakdown() engine.Breakdown {
	g.mu.Lock()
	defer g.mu.Unlock()

	return engine.EvaluateBreakdown(g.board, g.board.Turn, &g.config)
}

// MovesFrom returns the legal moves originating on one square, for UI
// highlighting.
func (g *Game) MovesFrom(sq chess.Square) []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.MovesFrom(sq)
}

// Configure applies a module toggle and/or depth change. Unknown module
// names are ignored; depth is clamped to [1, 3].
func (g *Game) Configure(req ConfigRequest) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if req.Module != "" && req.Enabled != nil {
		g.config.SetModule(req.Module, *req.Enabled)
	}
	if req.Depth != nil {
		g.config.SetDepth(*req.Depth)
	}
}

func (g *Game) RegisterConnection(clientID string, conn *websocket.Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		// Keep the healthy existing connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(clientID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, clientID)
}

// broadcastState pushes the current snapshot to every registered observer,
// dropping connections that fail to write.
func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal game state: %v", err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for clientID, conn := range g.connections.connections {
		active[clientID] = conn
	}
	g.connections.mu.RUnlock()

	for clientID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to %s: %v", clientID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, clientID)
			g.connections.mu.Unlock()
		}
	}
}
