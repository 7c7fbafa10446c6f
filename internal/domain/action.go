package domain

// Action is one classified gesture from the external predictor.
type Action string

const (
	ActionNone   Action = ""
	ActionLeft   Action = "left"
	ActionRight  Action = "right"
	ActionClench Action = "clench"
)

// ParseAction maps a wire string to an Action. Unknown strings read as none;
// the predictor is not validated beyond that.
func ParseAction(s string) Action {
	switch Action(s) {
	case ActionLeft, ActionRight, ActionClench:
		return Action(s)
	default:
		return ActionNone
	}
}
