package tictactoe

import (
	"github.com/timpalpant/go-mdp"
	"github.com/timpalpant/go-mdp/tree"
)

// Successors returns the positions reachable from s in one move.
func Successors(s mdp.State) []mdp.State {
	state := s.(State)
	moves := state.LegalMoves()
	result := make([]mdp.State, 0, len(moves))
	for _, m := range moves {
		child, err := state.Play(m)
		if err != nil {
			panic(err) // LegalMoves only returns playable cells.
		}

		result = append(result, child)
	}

	return result
}

// EnumerateStates returns the state space of the MDP in which turn is the
// agent: every reachable position where turn is to move and the game is
// not over, plus every reachable terminal position. Positions are reached
// from the empty board with X moving first, in breadth-first order.
//
// The result is empty unless turn is X or O.
func EnumerateStates(turn Mark) []mdp.State {
	if turn != X && turn != O {
		return nil
	}

	var result []mdp.State
	for _, s := range tree.Closure([]mdp.State{NewGame()}, Successors) {
		if s.IsTerminal() || s.(State).turn == turn {
			result = append(result, s)
		}
	}

	return result
}
