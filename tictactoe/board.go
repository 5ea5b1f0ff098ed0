// Package tictactoe implements Tic-Tac-Toe as a Markov decision process:
// the agent moves, and the opponent's reply is part of the environment's
// stochastic dynamics.
package tictactoe

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-mdp"
)

type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

var markStr = [...]string{
	".",
	"X",
	"O",
}

func (m Mark) String() string {
	return markStr[m]
}

// Opponent returns the other player's mark, or Empty for Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}

	return Empty
}

const (
	Rows     = 3
	Cols     = 3
	numCells = Rows * Cols
)

// Board is the 3x3 grid in row-major order.
type Board [numCells]Mark

// lines that win the game when filled with the same mark.
var lines = [...][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // Rows.
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // Columns.
	{0, 4, 8}, {2, 4, 6}, // Diagonals.
}

// Winner returns the mark that completed a line, or Empty.
func (b Board) Winner() Mark {
	for _, line := range lines {
		m := b[line[0]]
		if m != Empty && m == b[line[1]] && m == b[line[2]] {
			return m
		}
	}

	return Empty
}

func (b Board) IsFull() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}

	return true
}

func (b Board) count(m Mark) int {
	total := 0
	for _, cell := range b {
		if cell == m {
			total++
		}
	}

	return total
}

// Move places the current player's mark in a cell, numbered 0-8 in
// row-major order.
type Move uint8

// Key implements mdp.Action.
func (m Move) Key() string {
	return string(rune('0' + m))
}

func (m Move) Row() int {
	return int(m) / Cols
}

func (m Move) Col() int {
	return int(m) % Cols
}

// String implements fmt.Stringer.
func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row(), m.Col())
}

// State is an immutable Tic-Tac-Toe position together with the player to move.
// States are comparable and equal exactly when their boards and turns match.
type State struct {
	board Board
	turn  Mark
}

var _ mdp.State = State{}

// NewGame returns the empty board with X to move.
func NewGame() State {
	return State{turn: X}
}

// NewState returns the position with the given board and player to move.
// X always moves first, so the mark counts on the board must agree with turn.
func NewState(board Board, turn Mark) (State, error) {
	nX, nO := board.count(X), board.count(O)
	switch {
	case turn == X && nX == nO:
	case turn == O && nX == nO+1:
	default:
		return State{}, errors.Wrapf(mdp.ErrInvalidArgument,
			"%v cannot be to move with %d X and %d O on the board", turn, nX, nO)
	}

	return State{board: board, turn: turn}, nil
}

func (s State) Board() Board {
	return s.board
}

// Turn returns the player to move. For terminal positions this is the
// player who would have moved next.
func (s State) Turn() Mark {
	return s.turn
}

// Key implements mdp.State.
func (s State) Key() string {
	var buf [numCells + 1]byte
	for i, m := range s.board {
		buf[i] = markStr[m][0]
	}
	buf[numCells] = markStr[s.turn][0]
	return string(buf[:])
}

func (s State) Winner() Mark {
	return s.board.Winner()
}

// IsTerminal implements mdp.State.
func (s State) IsTerminal() bool {
	return s.board.Winner() != Empty || s.board.IsFull()
}

// LegalMoves returns the empty cells in ascending order, or nil if the
// game is over.
func (s State) LegalMoves() []Move {
	if s.IsTerminal() {
		return nil
	}

	moves := make([]Move, 0, numCells)
	for i, m := range s.board {
		if m == Empty {
			moves = append(moves, Move(i))
		}
	}

	return moves
}

// LegalActions implements mdp.State.
func (s State) LegalActions() []mdp.Action {
	moves := s.LegalMoves()
	if len(moves) == 0 {
		return nil
	}

	actions := make([]mdp.Action, len(moves))
	for i, m := range moves {
		actions[i] = m
	}

	return actions
}

// Play returns the position after the player to move marks cell m.
func (s State) Play(m Move) (State, error) {
	if s.IsTerminal() {
		return s, errors.Wrapf(mdp.ErrIllegalMove, "game is over in state %v", s.Key())
	}

	if int(m) >= numCells {
		return s, errors.Wrapf(mdp.ErrIllegalMove, "cell %d is off the board", m)
	}

	if s.board[m] != Empty {
		return s, errors.Wrapf(mdp.ErrIllegalMove, "cell %v is already taken by %v", m, s.board[m])
	}

	next := s
	next.board[m] = s.turn
	next.turn = s.turn.Opponent()
	return next, nil
}

// String implements fmt.Stringer.
func (s State) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteString(s.board[r*Cols+c].String())
		}
		sb.WriteByte('/')
	}

	fmt.Fprintf(&sb, " %v to move", s.turn)
	return sb.String()
}
