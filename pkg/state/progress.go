package state

// RoomProgress holds the scratch state of each room. Every field belongs to
// exactly one room handler and is created on first access through the
// matching accessor.
type RoomProgress struct {
	Classroom   *ClassroomProgress   `json:"classroom2015,omitempty"`
	FrontDesk   *FrontDeskProgress   `json:"frontdeskoffice,omitempty"`
	ProjectRoom *ProjectRoomProgress `json:"projectroom3,omitempty"`
	Study       *StudyProgress       `json:"studylandscape,omitempty"`
	Lab         *LabProgress         `json:"lab03,omitempty"`
}

// ClassroomProgress tracks the cyborg conversation.
type ClassroomProgress struct {
	Stage         int  `json:"stage"`
	Missteps      int  `json:"missteps"`
	Active        bool `json:"active"`
	RewardSpawned bool `json:"reward_spawned"`
}

// FrontDeskProgress remembers the question currently on offer.
type FrontDeskProgress struct {
	Question      string `json:"question,omitempty"`
	RewardSpawned bool   `json:"reward_spawned"`
}

// ProjectRoomProgress persists what must survive between visits. The hangman
// instance itself lives only for one visit.
type ProjectRoomProgress struct {
	LastWord    string `json:"last_word,omitempty"`
	Solved      bool   `json:"solved"`
	RewardTaken bool   `json:"reward_taken"`
}

type StudyProgress struct {
	CipherSolved bool `json:"cipher_solved"`
	WrongAnswers int  `json:"wrong_answers"`
}

type LabProgress struct {
	TerminalVisits    int  `json:"terminal_visits"`
	CalibrationPassed bool `json:"calibration_passed"`
	KeyGranted        bool `json:"key_granted"`
}

func (gs *GameState) ClassroomProgress() *ClassroomProgress {
	if gs.Rooms.Classroom == nil {
		gs.Rooms.Classroom = &ClassroomProgress{}
	}
	return gs.Rooms.Classroom
}

func (gs *GameState) FrontDeskProgress() *FrontDeskProgress {
	if gs.Rooms.FrontDesk == nil {
		gs.Rooms.FrontDesk = &FrontDeskProgress{}
	}
	return gs.Rooms.FrontDesk
}

func (gs *GameState) ProjectRoomProgress() *ProjectRoomProgress {
	if gs.Rooms.ProjectRoom == nil {
		gs.Rooms.ProjectRoom = &ProjectRoomProgress{}
	}
	return gs.Rooms.ProjectRoom
}

func (gs *GameState) StudyProgress() *StudyProgress {
	if gs.Rooms.Study == nil {
		gs.Rooms.Study = &StudyProgress{}
	}
	return gs.Rooms.Study
}

func (gs *GameState) LabProgress() *LabProgress {
	if gs.Rooms.Lab == nil {
		gs.Rooms.Lab = &LabProgress{}
	}
	return gs.Rooms.Lab
}
