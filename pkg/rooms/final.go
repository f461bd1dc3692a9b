package rooms

import (
	"context"

	"github.com/jwebster45206/school-maze/pkg/state"
)

// FinalRoom is lab01. Reaching it with the security key wins the game.
type FinalRoom struct {
	room
}

func NewFinalRoom(env *Env) *FinalRoom {
	return &FinalRoom{
		room: room{
			env: env,
			id:  state.RoomFinal,
		},
	}
}

func (f *FinalRoom) Enter(_ context.Context, gs *state.GameState) (Result, error) {
	if !f.gate(gs, state.ItemSecurityKey,
		"The door of lab01 has a security key slot. Without a key, it won't budge.",
		"You insert the security key. The heavy door of lab01 swings open.") {
		back := gs.PreviousRoom
		if back == "" || back == f.id {
			back = state.RoomStudy
		}
		return Result{Next: back}, nil
	}

	gs.Visit(f.id).Completed = true
	gs.AwardOnce("final_reached", ScoreFinal)
	gs.GameBeaten = true
	f.env.say("Lab01 hums with servers. On the central screen a message blinks:\n" +
		"CONGRATULATIONS, %s. YOU ESCAPED THE SCHOOL MAZE.\nFinal score: %d", playerName(gs), gs.Score)
	f.logger().Info("game beaten", "score", gs.Score)
	return Result{Signal: SignalWin}, nil
}

func playerName(gs *state.GameState) string {
	if gs.PlayerName == "" {
		return "STUDENT"
	}
	return gs.PlayerName
}
