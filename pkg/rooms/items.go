package rooms

import (
	"strings"

	"github.com/jwebster45206/school-maze/pkg/state"
)

// Points awarded or deducted by room outcomes.
const (
	ScoreCorridorQuiz     = 10
	PenaltyCorridorQuiz   = -5
	ScoreClassroom        = 30
	PenaltyMisstep        = -5
	ScoreFrontDesk        = 30
	ScoreProjectRoomBase  = 20
	ScoreProjectRoomBonus = 5 // per attempt left
	ScoreStudyCipher      = 15
	ScoreLabKey           = 30
	ScoreCalibration      = 20
	ScoreFinal            = 50
)

// EncounterProbability is the chance the corridor quiz triggers on entry.
const EncounterProbability = 0.80

var itemAliases = map[string]string{
	"yellow keycard": state.ItemKeycard,
	"keycard":        state.ItemKeycard,
	"harddisk":       state.ItemHardDisk,
	"hard disk":      state.ItemHardDisk,
	"hard-disk":      state.ItemHardDisk,
	"security key":   state.ItemSecurityKey,
	"security_key":   state.ItemSecurityKey,
	"securitykey":    state.ItemSecurityKey,
	"battery":        state.ItemBattery,
	"manual":         state.ItemManual,
	"lab manual":     state.ItemManual,
	"the manual":     state.ItemManual,
}

// canonicalItem maps what a player typed onto an item identifier. Unknown
// names come back lowercased.
func canonicalItem(name string) string {
	name = strings.ToLower(strings.Join(strings.Fields(name), " "))
	if id, ok := itemAliases[name]; ok {
		return id
	}
	return name
}

var commonHelp = []string{
	"- look around          : Describe the room.",
	"- display status       : Show location, inventory, health and score.",
	"- check inventory      : See what you are carrying.",
	"- read manual          : Read the lab manual, if you carry it.",
	"- go <room> / back     : Leave the room.",
	"- ?                    : Show this help message.",
	"- pause                : Save and exit.",
	"- quit                 : Quit without saving.",
}

const manualText = `LAB WORKSTATION MANUAL (rev. 3)
  ls [path]      list a directory
  cd <path>      change directory ("/" is the top, ".." goes up)
  cat <file>     print a file
  pwd, whoami    where and who you are
  su <user>      switch user (asks for a password)
  ./<program>    run a program you own
  exit           leave the workstation
Calibration tools are installed under /opt and belong to root.`
