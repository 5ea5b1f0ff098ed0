package tictactoe

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/timpalpant/go-mdp"
)

// MDP is the transition model of Tic-Tac-Toe seen by one player: each
// action is the agent's move followed by the opponent's reply.
type MDP struct {
	agent    Mark
	opponent Opponent
	rewards  Rewards
}

var _ mdp.Model = &MDP{}

// NewMDP returns the transition model for the given agent mark. A nil
// opponent replies uniformly at random.
func NewMDP(agent Mark, opponent Opponent, rewards Rewards) (*MDP, error) {
	if agent != X && agent != O {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "agent must play X or O, got %v", agent)
	}

	if opponent == nil {
		opponent = RandomOpponent{}
	}

	return &MDP{
		agent:    agent,
		opponent: opponent,
		rewards:  rewards,
	}, nil
}

func (m *MDP) Agent() Mark {
	return m.agent
}

// Transitions implements mdp.Model.
//
// If the agent's move ends the game there is a single outcome paying
// Win or Draw. Otherwise there is one outcome per opponent reply the
// opponent plays with non-zero probability, paying Loss, Draw or Living,
// and leading to a position with the agent to move again.
func (m *MDP) Transitions(s mdp.State, a mdp.Action) ([]mdp.TransitionProb, error) {
	state, ok := s.(State)
	if !ok {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "not a tic-tac-toe state: %v", s)
	}

	move, ok := a.(Move)
	if !ok {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "not a tic-tac-toe move: %v", a)
	}

	if state.IsTerminal() {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "no transitions from terminal state %v", state)
	}

	if state.turn != m.agent {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "%v is not to move in state %v", m.agent, state)
	}

	after, err := state.Play(move)
	if err != nil {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "illegal action: %v", err)
	}

	if after.IsTerminal() {
		return []mdp.TransitionProb{{
			P: 1.0,
			Outcome: mdp.Outcome{
				S:      state,
				Action: move,
				Reward: m.rewards.reward(after, m.agent),
				Next:   after,
			},
		}}, nil
	}

	replies := after.LegalMoves()
	probs, err := checkedReplies(m.opponent, after, replies)
	if err != nil {
		return nil, err
	}

	result := make([]mdp.TransitionProb, 0, len(replies))
	for i, reply := range replies {
		if probs[i] == 0 {
			continue
		}

		next, err := after.Play(reply)
		if err != nil {
			return nil, err
		}

		result = append(result, mdp.TransitionProb{
			P: probs[i],
			Outcome: mdp.Outcome{
				S:      state,
				Action: move,
				Reward: m.rewards.reward(next, m.agent),
				Next:   next,
			},
		})
	}

	return result, nil
}

// checkedReplies returns the opponent's distribution over moves in s,
// checking that it is a valid probability distribution.
func checkedReplies(opponent Opponent, s State, moves []Move) ([]float64, error) {
	probs := opponent.Replies(s, moves)
	if len(probs) != len(moves) {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument,
			"opponent returned %d probabilities for %d moves", len(probs), len(moves))
	}

	for _, p := range probs {
		if p < 0 {
			return nil, errors.Wrapf(mdp.ErrInvalidArgument, "negative reply probability %v", p)
		}
	}

	if total := floats.Sum(probs); !scalar.EqualWithinAbs(total, 1.0, 1e-9) {
		return nil, errors.Wrapf(mdp.ErrInvalidArgument, "reply probabilities sum to %v", total)
	}

	return probs, nil
}
