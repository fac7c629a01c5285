package types

import "fmt"

// Action is the discrete trading label attached to a labeled record.
// The numeric values are part of the persisted format.
type Action int

const (
	// ActionSell marks a row close to the forthcoming local maximum.
	ActionSell Action = 1
	// ActionBuy marks a row close to the forthcoming local minimum.
	ActionBuy Action = 2
	// ActionHold is the default label.
	ActionHold Action = 3
)

// Actions lists every action in encoding order.
var Actions = []Action{ActionSell, ActionBuy, ActionHold}

func (a Action) String() string {
	switch a {
	case ActionSell:
		return "SELL"
	case ActionBuy:
		return "BUY"
	case ActionHold:
		return "HOLD"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// IsValid reports whether a is one of the encoded actions.
func (a Action) IsValid() bool {
	return a == ActionSell || a == ActionBuy || a == ActionHold
}

// ParseAction converts an encoded action value into an Action.
func ParseAction(value int) (Action, error) {
	action := Action(value)
	if !action.IsValid() {
		return 0, fmt.Errorf("invalid action value %d, expected 1 (SELL), 2 (BUY) or 3 (HOLD)", value)
	}

	return action, nil
}
