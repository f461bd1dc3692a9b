package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		wantCmd CommandType
		wantArg string
	}{
		{"look around", CmdLook, ""},
		{"  LOOK   around ", CmdLook, ""},
		{"?", CmdHelp, ""},
		{"help", CmdHelp, ""},
		{"display status", CmdStatus, ""},
		{"check inventory", CmdInventory, ""},
		{"go classroom2015", CmdGo, "classroom2015"},
		{"go back", CmdBack, ""},
		{"back", CmdBack, ""},
		{"leave", CmdBack, ""},
		{"pause", CmdPause, ""},
		{"quit", CmdQuit, ""},
		{"approach cyborg", CmdApproach, "cyborg"},
		{"answer b", CmdAnswer, "b"},
		{"choose C", CmdAnswer, "c"},
		{"d", CmdAnswer, "d"},
		{"take yellow keycard", CmdTake, "yellow keycard"},
		{"guess e", CmdGuess, "e"},
		{"solve protocol", CmdSolve, "protocol"},
		{"decrypt the wall", CmdSolve, "the wall"},
		{"enter the pc", CmdEnter, "pc"},
		{"enter pc", CmdEnter, "pc"},
		{"start challenge", CmdStart, ""},
		{"search large desk", CmdSearch, "large desk"},
		{"read manual", CmdRead, "manual"},
		{"dance", CmdNone, ""},
		{"", CmdNone, ""},
		{"go", CmdNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.wantCmd, cmd.Type)
			assert.Equal(t, tt.wantArg, cmd.Arg)
		})
	}
}

func TestParseCommand_KeepsArgumentCase(t *testing.T) {
	cmd := ParseCommand("  Answer   Qxf7# ")
	assert.Equal(t, CmdAnswer, cmd.Type)
	assert.Equal(t, "qxf7#", cmd.Arg)
	assert.Equal(t, "Qxf7#", cmd.Text)

	cmd = ParseCommand("Enter The PC")
	assert.Equal(t, "pc", cmd.Arg)
	assert.Equal(t, "PC", cmd.Text)
}

func TestGameState_DescribeStatus(t *testing.T) {
	gs := NewGameState()
	gs.MoveTo(RoomFrontDesk)
	gs.AddItem(ItemBattery)
	gs.Visit(RoomFrontDesk).Completed = true

	status := gs.DescribeStatus()

	assert.Contains(t, status, "Current location: Frontdeskoffice")
	assert.Contains(t, status, "Inventory: battery")
	assert.Contains(t, status, "Health: 3 HP")
	assert.Contains(t, status, "Rooms completed: Frontdeskoffice")
}

func TestGameState_DescribeInventory(t *testing.T) {
	gs := NewGameState()
	assert.Equal(t, "Your backpack is empty.", gs.DescribeInventory())

	gs.AddItem(ItemManual)
	assert.Contains(t, gs.DescribeInventory(), "- manual")
}
