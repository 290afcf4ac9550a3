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
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []Player:
		o.printLeaderboard(v)
	case []Game:
		o.printGames(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GloryPoints int       `json:"gloryPoints"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Game response type
type Game struct {
	ID        string    `json:"id"`
	LobbyID   string    `json:"lobbyId"`
	Status    string    `json:"status"`
	Players   []string  `json:"players"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLeaderboard(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players yet")
		return
	}
	fmt.Printf("%-4s %-22s %s\n", "#", "NAME", "GLORY")
	for i, p := range players {
		fmt.Printf("%-4d %-22s %d\n", i+1, p.Name, p.GloryPoints)
	}
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games yet")
		return
	}
	fmt.Printf("%-14s %-12s %-10s %s\n", "ID", "LOBBY", "STATUS", "WINNER")
	for _, g := range games {
		winner := g.Winner
		if winner == "" && g.Status == "completed" {
			winner = "(tie)"
		}
		fmt.Printf("%-14s %-12s %-10s %s\n", g.ID, g.LobbyID, g.Status, winner)
	}
}
