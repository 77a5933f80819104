package entity

// Session ties one browser to one game.
type Session struct {
	ID   string `json:"id"`
	Game *Game  `json:"game"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Game: NewGame(),
	}
}
