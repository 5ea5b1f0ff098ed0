package tictactoe

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/timpalpant/go-mdp"
	"github.com/timpalpant/go-mdp/internal/sampling"
)

// Environment is a live game against an Opponent whose replies are sampled
// from rng. It implements mdp.Environment.
type Environment struct {
	agent    Mark
	opponent Opponent
	rewards  Rewards
	rng      *rand.Rand

	state State
}

var _ mdp.Environment = &Environment{}

// NewEnvironment returns an environment in which the agent plays the given
// mark. A nil opponent replies uniformly at random. The environment starts
// reset.
//
// If the agent plays O, the opponent's opening distribution is checked here,
// so that an invalid one is reported as an error rather than from Reset.
func NewEnvironment(agent Mark, opponent Opponent, rewards Rewards, rng *rand.Rand) (*Environment, error) {
	if agent != X && agent != O {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "agent must play X or O, got %v", agent)
	}

	if rng == nil {
		return nil, errors.Wrap(mdp.ErrInvalidArgument, "environment requires a random source")
	}

	if opponent == nil {
		opponent = RandomOpponent{}
	}

	if agent == O {
		game := NewGame()
		if _, err := checkedReplies(opponent, game, game.LegalMoves()); err != nil {
			return nil, errors.Wrap(err, "invalid opening reply")
		}
	}

	env := &Environment{
		agent:    agent,
		opponent: opponent,
		rewards:  rewards,
		rng:      rng,
	}

	env.Reset()
	return env, nil
}

// Reset implements mdp.Environment. If the agent plays O, the opponent
// makes the opening move. Reset panics if the opponent's opening
// distribution has become invalid since NewEnvironment checked it.
func (e *Environment) Reset() {
	e.state = NewGame()
	if e.agent == O {
		next, err := e.reply(e.state)
		if err != nil {
			panic(err)
		}

		e.state = next
	}
}

// CurrentState implements mdp.Environment.
func (e *Environment) CurrentState() mdp.State {
	return e.state
}

func (e *Environment) State() State {
	return e.state
}

// IsTerminal implements mdp.Environment.
func (e *Environment) IsTerminal() bool {
	return e.state.IsTerminal()
}

// LegalActions implements mdp.Environment.
func (e *Environment) LegalActions() []mdp.Action {
	return e.state.LegalActions()
}

// Execute implements mdp.Environment: the agent plays a, and unless that
// ends the game the opponent replies.
func (e *Environment) Execute(a mdp.Action) (mdp.Outcome, error) {
	move, ok := a.(Move)
	if !ok {
		return mdp.Outcome{}, errors.Wrapf(mdp.ErrIllegalMove, "not a tic-tac-toe move: %v", a)
	}

	after, err := e.state.Play(move)
	if err != nil {
		return mdp.Outcome{}, err
	}

	next := after
	if !after.IsTerminal() {
		if next, err = e.reply(after); err != nil {
			return mdp.Outcome{}, err
		}
	}

	outcome := mdp.Outcome{
		S:      e.state,
		Action: move,
		Reward: e.rewards.reward(next, e.agent),
		Next:   next,
	}

	e.state = next
	return outcome, nil
}

func (e *Environment) reply(s State) (State, error) {
	moves := s.LegalMoves()
	probs, err := checkedReplies(e.opponent, s, moves)
	if err != nil {
		return s, err
	}

	i := sampling.SampleOne(probs, e.rng)
	return s.Play(moves[i])
}
