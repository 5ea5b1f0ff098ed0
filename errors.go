package mdp

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for malformed queries, such as asking
	// for the transitions of a terminal state or configuring a discount
	// outside of [0, 1].
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalMove is returned by an Environment when asked to execute
	// an action that is not legal in the current state.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNotConverged is returned when a solver hits its iteration cap.
	ErrNotConverged = errors.New("did not converge")
	// ErrMissingValue is returned when a non-terminal successor state has
	// no entry in the value table or Q-table, i.e. the enumerated state
	// space is not closed under the transition model.
	ErrMissingValue = errors.New("missing value")
)
