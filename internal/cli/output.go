package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case OpenGamesResult:
		o.printOpenGames(v)
	case MoveResult:
		o.printMoveResult(v)
	case PollResult:
		o.printPollResult(v)
	case StatsResult:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Board response type
type Board struct {
	PlayerID string  `json:"player_id"`
	Grid     [][]int `json:"grid"`
}

// Move response type
type Move struct {
	ID        int64     `json:"id"`
	PlayerID  string    `json:"player_id"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Game response type
type Game struct {
	ID                    string  `json:"id"`
	Player1ID             string  `json:"player_1"`
	Player2ID             *string `json:"player_2"`
	Status                string  `json:"status"`
	Winner                *string `json:"winner"`
	Player1InactiveMisses int     `json:"player_1_inactive_misses"`
	Player2InactiveMisses int     `json:"player_2_inactive_misses"`
	Player1               *Player `json:"player1,omitempty"`
	Player2               *Player `json:"player2,omitempty"`
	Boards                []Board `json:"boards,omitempty"`
	Moves                 []Move  `json:"moves,omitempty"`
}

// GameResult wraps a single game response
type GameResult struct {
	Game Game `json:"game"`
}

// OpenGame response type
type OpenGame struct {
	ID        string  `json:"id"`
	Player1ID string  `json:"player_1"`
	Player1   *Player `json:"player1,omitempty"`
}

// OpenGamesResult response type
type OpenGamesResult struct {
	Games []OpenGame `json:"games"`
}

// MoveResult response type
type MoveResult struct {
	Result string `json:"result"`
	Game   Game   `json:"game"`
}

// PollResult response type
type PollResult struct {
	Game       Game   `json:"game"`
	LastMoveID int64  `json:"last_move_id"`
	Status     string `json:"status,omitempty"`
}

// StatsResult response type
type StatsResult struct {
	Games []Game `json:"games"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func playerLabel(id string, p *Player) string {
	if p != nil {
		return fmt.Sprintf("%s (%s)", p.DisplayName, p.ID)
	}
	return id
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Player 1: %s (inactive misses: %d)\n", playerLabel(g.Player1ID, g.Player1), g.Player1InactiveMisses)

	if g.Player2ID != nil {
		fmt.Printf("Player 2: %s (inactive misses: %d)\n", playerLabel(*g.Player2ID, g.Player2), g.Player2InactiveMisses)
	} else {
		fmt.Println("Player 2: waiting for opponent")
	}

	if g.Winner != nil {
		fmt.Printf("Winner: %s\n", *g.Winner)
	}

	for _, b := range g.Boards {
		fmt.Printf("\nBoard (%s):\n", b.PlayerID)
		o.printBoard(b)
	}

	if len(g.Moves) > 0 {
		fmt.Printf("\nMoves (%d):\n", len(g.Moves))
		for _, m := range g.Moves {
			fmt.Printf("  #%d %s fired at (%d,%d): %s\n", m.ID, m.PlayerID, m.X, m.Y, m.Result)
		}
	}
}

func (o *Output) printBoard(b Board) {
	size := len(b.Grid)
	if size == 0 {
		return
	}

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf(" %d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < len(b.Grid[row]); col++ {
			if b.Grid[row][col] == 1 {
				fmt.Print(" S ")
			} else {
				fmt.Print(" . ")
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printOpenGames(r OpenGamesResult) {
	if len(r.Games) == 0 {
		fmt.Println("No open games")
		return
	}

	fmt.Printf("Open games (%d):\n", len(r.Games))
	for _, g := range r.Games {
		fmt.Printf("  - %s created by %s\n", g.ID, playerLabel(g.Player1ID, g.Player1))
	}
}

func (o *Output) printMoveResult(m MoveResult) {
	fmt.Printf("Result: %s\n", m.Result)
	fmt.Println()
	o.printGame(m.Game)
}

func (o *Output) printPollResult(p PollResult) {
	if p.Status == "no_changes" {
		fmt.Println("No changes")
		return
	}

	o.printGame(p.Game)
	fmt.Printf("\nLast Move ID: %d\n", p.LastMoveID)
}

func (o *Output) printStats(s StatsResult) {
	if len(s.Games) == 0 {
		fmt.Println("No finished games")
		return
	}

	fmt.Printf("Finished games (%d):\n", len(s.Games))
	for _, g := range s.Games {
		winner := "none"
		if g.Winner != nil {
			winner = *g.Winner
		}
		fmt.Printf("  - %s (%s) winner: %s\n", g.ID, g.Status, winner)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
