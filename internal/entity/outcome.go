package entity

type OutcomeKind uint8

const (
	OutcomeInProgress OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

// Outcome is the terminal status of a board. Player and Line are only set for a win.
type Outcome struct {
	Kind   OutcomeKind
	Player Cell
	Line   []int
}

func (that Outcome) IsWin() bool {
	return that.Kind == OutcomeWin
}

func (that Outcome) IsDraw() bool {
	return that.Kind == OutcomeDraw
}

func (that Outcome) IsFinished() bool {
	return that.Kind != OutcomeInProgress
}
