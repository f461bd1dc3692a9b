package state

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoomID identifies a room in the maze.
type RoomID string

const (
	RoomCorridor    RoomID = "corridor"
	RoomClassroom   RoomID = "classroom2015"
	RoomFrontDesk   RoomID = "frontdeskoffice"
	RoomProjectRoom RoomID = "projectroom3"
	RoomStudy       RoomID = "studylandscape"
	RoomLab         RoomID = "lab03"
	RoomFinal       RoomID = "lab01"
)

// Canonical item identifiers.
const (
	ItemManual      = "manual"
	ItemBattery     = "battery"
	ItemKeycard     = "keycard"
	ItemHardDisk    = "hard disk"
	ItemSecurityKey = "security key"
)

const (
	StartingHealth     = 3
	CorridorEncounters = 3
)

// VisitState records gate and completion progress for one room.
// RemainingEncounters is only meaningful for the corridor.
type VisitState struct {
	Unlocked            bool `json:"unlocked"`
	Completed           bool `json:"completed"`
	RemainingEncounters int  `json:"remaining_encounters,omitempty"`
}

// GameState is the complete progress record of one playthrough.
type GameState struct {
	ID             uuid.UUID              `json:"id"`
	PlayerName     string                 `json:"player_name,omitempty"`
	CurrentRoom    RoomID                 `json:"current_room"`
	PreviousRoom   RoomID                 `json:"previous_room"`
	Inventory      []string               `json:"inventory"`
	Health         int                    `json:"health"`
	Score          int                    `json:"score"`
	Visited        map[RoomID]*VisitState `json:"visited"`
	Rooms          RoomProgress           `json:"rooms"`
	Flags          map[string]bool        `json:"flags"`
	ElapsedSeconds float64                `json:"elapsed_seconds"`
	GameBeaten     bool                   `json:"game_beaten"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func NewGameState() *GameState {
	return &GameState{
		ID:           uuid.New(),
		CurrentRoom:  RoomCorridor,
		PreviousRoom: RoomCorridor,
		Inventory:    []string{},
		Health:       StartingHealth,
		Visited: map[RoomID]*VisitState{
			RoomCorridor: {Unlocked: true, RemainingEncounters: CorridorEncounters},
		},
		Flags: make(map[string]bool),
	}
}

// Reset returns the state to a fresh game, keeping the player's name.
func (gs *GameState) Reset() {
	name := gs.PlayerName
	*gs = *NewGameState()
	gs.PlayerName = name
}

// Normalize fills in maps that may be missing from an older or hand-edited save.
func (gs *GameState) Normalize() {
	if gs.ID == uuid.Nil {
		gs.ID = uuid.New()
	}
	if gs.CurrentRoom == "" {
		gs.CurrentRoom = RoomCorridor
	}
	if gs.PreviousRoom == "" {
		gs.PreviousRoom = RoomCorridor
	}
	if gs.Inventory == nil {
		gs.Inventory = []string{}
	}
	if gs.Visited == nil {
		gs.Visited = make(map[RoomID]*VisitState)
	}
	if _, ok := gs.Visited[RoomCorridor]; !ok {
		gs.Visited[RoomCorridor] = &VisitState{Unlocked: true, RemainingEncounters: CorridorEncounters}
	}
	if gs.Flags == nil {
		gs.Flags = make(map[string]bool)
	}
	if gs.Health < 0 {
		gs.Health = 0
	}
}

// Visit returns the visit record for a room, creating it on first use.
func (gs *GameState) Visit(room RoomID) *VisitState {
	if gs.Visited == nil {
		gs.Visited = make(map[RoomID]*VisitState)
	}
	v, ok := gs.Visited[room]
	if !ok {
		v = &VisitState{}
		gs.Visited[room] = v
	}
	return v
}

// MoveTo records a transition out of the current room.
func (gs *GameState) MoveTo(room RoomID) {
	if room == gs.CurrentRoom {
		return
	}
	gs.PreviousRoom = gs.CurrentRoom
	gs.CurrentRoom = room
}

// HasItem reports whether the inventory holds item, ignoring case.
func (gs *GameState) HasItem(item string) bool {
	return gs.itemIndex(item) >= 0
}

// AddItem appends item unless an equal item (ignoring case) is already held.
// It reports whether the inventory changed.
func (gs *GameState) AddItem(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" || gs.HasItem(item) {
		return false
	}
	gs.Inventory = append(gs.Inventory, item)
	return true
}

// RemoveItem drops item from the inventory, ignoring case.
func (gs *GameState) RemoveItem(item string) bool {
	i := gs.itemIndex(item)
	if i < 0 {
		return false
	}
	gs.Inventory = slices.Delete(gs.Inventory, i, i+1)
	return true
}

func (gs *GameState) itemIndex(item string) int {
	item = strings.TrimSpace(item)
	return slices.IndexFunc(gs.Inventory, func(held string) bool {
		return strings.EqualFold(held, item)
	})
}

// Damage subtracts n health points, never dropping below zero, and returns
// the remaining health.
func (gs *GameState) Damage(n int) int {
	gs.Health = max(gs.Health-n, 0)
	return gs.Health
}

func (gs *GameState) IsDead() bool {
	return gs.Health <= 0
}

// AwardOnce adds points the first time flag is seen and reports whether it did.
func (gs *GameState) AwardOnce(flag string, points int) bool {
	if gs.Flags == nil {
		gs.Flags = make(map[string]bool)
	}
	if gs.Flags[flag] {
		return false
	}
	gs.Flags[flag] = true
	gs.Score += points
	return true
}

// AddElapsed accumulates play time from the current session.
func (gs *GameState) AddElapsed(d time.Duration) {
	if d > 0 {
		gs.ElapsedSeconds += d.Seconds()
	}
}

// CompletedRooms lists completed rooms other than the corridor, sorted.
func (gs *GameState) CompletedRooms() []RoomID {
	var rooms []RoomID
	for id, v := range gs.Visited {
		if id != RoomCorridor && v != nil && v.Completed {
			rooms = append(rooms, id)
		}
	}
	slices.Sort(rooms)
	return rooms
}
