package entity

import "time"

type Session struct {
	ID        string    `json:"id"`
	State     GameState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (that *Session) Clone() *Session {
	clone := *that
	clone.State = that.State.Clone()

	return &clone
}
