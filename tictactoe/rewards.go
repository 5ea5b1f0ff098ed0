package tictactoe

import (
	"github.com/timpalpant/go-mdp"
)

// Rewards are the reward constants paid to the agent.
type Rewards struct {
	Win  float64
	Loss float64
	// Living is paid for every exchange of moves that does not end the game.
	Living float64
	Draw   float64
}

// DefaultRewards pays +10 for a win, -10 for a loss and nothing otherwise.
func DefaultRewards() Rewards {
	return Rewards{
		Win:    10,
		Loss:   -10,
		Living: 0,
		Draw:   0,
	}
}

// ParseRewards parses a configuration string such as "win=1,loss=-1,living=-0.01"
// on top of DefaultRewards.
func ParseRewards(config string) (Rewards, error) {
	r := DefaultRewards()
	params, err := mdp.ParseConfig(config)
	if err != nil {
		return r, err
	}

	if r.Win, err = mdp.PopParamOr(params, "win", r.Win); err != nil {
		return r, err
	}
	if r.Loss, err = mdp.PopParamOr(params, "loss", r.Loss); err != nil {
		return r, err
	}
	if r.Living, err = mdp.PopParamOr(params, "living", r.Living); err != nil {
		return r, err
	}
	if r.Draw, err = mdp.PopParamOr(params, "draw", r.Draw); err != nil {
		return r, err
	}

	return r, params.CheckEmpty()
}

// reward returns the reward to agent for arriving in s.
func (r Rewards) reward(s State, agent Mark) float64 {
	switch winner := s.Winner(); {
	case winner == agent:
		return r.Win
	case winner != Empty:
		return r.Loss
	case s.board.IsFull():
		return r.Draw
	}

	return r.Living
}
