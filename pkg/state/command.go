package state

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CommandType string

const (
	CmdLook      CommandType = "look"
	CmdHelp      CommandType = "help"
	CmdStatus    CommandType = "status"
	CmdInventory CommandType = "inventory"
	CmdGo        CommandType = "go"
	CmdBack      CommandType = "back"
	CmdPause     CommandType = "pause"
	CmdQuit      CommandType = "quit"
	CmdApproach  CommandType = "approach"
	CmdAnswer    CommandType = "answer"
	CmdTake      CommandType = "take"
	CmdGuess     CommandType = "guess"
	CmdSolve     CommandType = "solve"
	CmdEnter     CommandType = "enter"
	CmdStart     CommandType = "start"
	CmdTalk      CommandType = "talk"
	CmdSearch    CommandType = "search"
	CmdRead      CommandType = "read"
	CmdNone      CommandType = "" // No command, used for fallback
)

// Command is one parsed line of player input.
type Command struct {
	Type CommandType
	Arg  string // lowercased argument
	Text string // argument as typed
	Raw  string
}

// exact matches, checked before any prefix verb
var known = map[string]CommandType{
	"look around":     CmdLook,
	"look":            CmdLook,
	"l":               CmdLook,
	"?":               CmdHelp,
	"help":            CmdHelp,
	"display status":  CmdStatus,
	"status":          CmdStatus,
	"check inventory": CmdInventory,
	"inventory":       CmdInventory,
	"i":               CmdInventory,
	"back":            CmdBack,
	"leave":           CmdBack,
	"go back":         CmdBack,
	"pause":           CmdPause,
	"quit":            CmdQuit,
	"start challenge": CmdStart,
	"talk":            CmdTalk,
}

// prefix verbs that take an argument, longest first
var prefixes = []struct {
	prefix string
	cmd    CommandType
}{
	{"enter the ", CmdEnter},
	{"approach ", CmdApproach},
	{"decrypt ", CmdSolve},
	{"answer ", CmdAnswer},
	{"choose ", CmdAnswer},
	{"search ", CmdSearch},
	{"enter ", CmdEnter},
	{"guess ", CmdGuess},
	{"solve ", CmdSolve},
	{"take ", CmdTake},
	{"read ", CmdRead},
	{"go ", CmdGo},
}

// ParseCommand normalizes input and returns the recognized command. Unknown
// input yields CmdNone with Raw set.
func ParseCommand(input string) Command {
	raw := strings.TrimSpace(input)
	trimmed := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if trimmed == "" {
		return Command{Type: CmdNone, Raw: raw}
	}
	if cmd, ok := known[trimmed]; ok {
		return Command{Type: cmd, Raw: raw}
	}
	switch trimmed {
	case "a", "b", "c", "d":
		return Command{Type: CmdAnswer, Arg: trimmed, Text: raw, Raw: raw}
	}
	for _, p := range prefixes {
		if arg, ok := strings.CutPrefix(trimmed, p.prefix); ok {
			words := len(strings.Fields(p.prefix))
			text := strings.Join(strings.Fields(raw)[words:], " ")
			return Command{Type: p.cmd, Arg: strings.TrimSpace(arg), Text: text, Raw: raw}
		}
	}
	return Command{Type: CmdNone, Raw: raw}
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a room identifier for players.
func DisplayName(room RoomID) string {
	return titleCaser.String(string(room))
}

func (gs *GameState) DescribeInventory() string {
	if len(gs.Inventory) == 0 {
		return "Your backpack is empty."
	}
	return "You open your backpack. Inside you find:\n- " + strings.Join(gs.Inventory, "\n- ")
}

// DescribeStatus renders the player status panel.
func (gs *GameState) DescribeStatus() string {
	var b strings.Builder
	b.WriteString("PLAYER STATUS\n")
	fmt.Fprintf(&b, "- Current location: %s\n", DisplayName(gs.CurrentRoom))
	if len(gs.Inventory) == 0 {
		b.WriteString("- Inventory: Empty\n")
	} else {
		fmt.Fprintf(&b, "- Inventory: %s\n", strings.Join(gs.Inventory, ", "))
	}
	fmt.Fprintf(&b, "- Health: %d HP\n", gs.Health)
	fmt.Fprintf(&b, "- Score: %d\n", gs.Score)

	completed := gs.CompletedRooms()
	if len(completed) == 0 {
		b.WriteString("- Rooms completed: None yet")
		return b.String()
	}
	names := make([]string, len(completed))
	for i, r := range completed {
		names[i] = DisplayName(r)
	}
	fmt.Fprintf(&b, "- Rooms completed: %s", strings.Join(names, ", "))
	return b.String()
}
