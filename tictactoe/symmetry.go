package tictactoe

// symmetries of the board as permutations of its cells: the element at
// index i is the cell that cell i maps to.
var symmetries = func() [8][numCells]int {
	transform := func(f func(r, c int) (int, int)) [numCells]int {
		var perm [numCells]int
		for i := range perm {
			r, c := f(i/Cols, i%Cols)
			perm[i] = r*Cols + c
		}
		return perm
	}

	const n = Rows - 1
	return [8][numCells]int{
		transform(func(r, c int) (int, int) { return r, c }),
		transform(func(r, c int) (int, int) { return c, n - r }),     // Rotate 90°.
		transform(func(r, c int) (int, int) { return n - r, n - c }), // Rotate 180°.
		transform(func(r, c int) (int, int) { return n - c, r }),     // Rotate 270°.
		transform(func(r, c int) (int, int) { return r, n - c }),     // Mirror left-right.
		transform(func(r, c int) (int, int) { return n - r, c }),     // Mirror top-bottom.
		transform(func(r, c int) (int, int) { return c, r }),         // Main diagonal.
		transform(func(r, c int) (int, int) { return n - c, n - r }), // Anti-diagonal.
	}
}()

func (b Board) apply(perm [numCells]int) Board {
	var result Board
	for i, m := range b {
		result[perm[i]] = m
	}
	return result
}

// EquivalentMoves returns true if moves a and b lead to positions that are
// the same up to a rotation or reflection of the board in s.
func EquivalentMoves(s State, a, b Move) bool {
	if a == b {
		return true
	}

	for _, perm := range symmetries {
		if perm[a] == int(b) && s.board.apply(perm) == s.board {
			return true
		}
	}

	return false
}
