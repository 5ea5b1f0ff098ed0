// Package tree implements helpers for walking the state graph of an MDP.
package tree

import (
	"github.com/timpalpant/go-mdp"
)

// Successors returns the states directly reachable from s.
type Successors func(s mdp.State) []mdp.State

// Visit walks every state reachable from roots breadth-first, calling
// visitor exactly once per distinct State.Key(). Successors of terminal
// states are never requested.
func Visit(roots []mdp.State, successors Successors, visitor func(s mdp.State, depth int)) {
	seen := make(map[string]struct{})
	frontier := make([]mdp.State, 0, len(roots))
	for _, s := range roots {
		if _, ok := seen[s.Key()]; !ok {
			seen[s.Key()] = struct{}{}
			frontier = append(frontier, s)
		}
	}

	for depth := 0; len(frontier) > 0; depth++ {
		var next []mdp.State
		for _, s := range frontier {
			visitor(s, depth)
			if s.IsTerminal() {
				continue
			}

			for _, child := range successors(s) {
				key := child.Key()
				if _, ok := seen[key]; ok {
					continue
				}

				seen[key] = struct{}{}
				next = append(next, child)
			}
		}

		frontier = next
	}
}

// Closure returns every state reachable from roots, in the order they are visited.
func Closure(roots []mdp.State, successors Successors) []mdp.State {
	var result []mdp.State
	Visit(roots, successors, func(s mdp.State, depth int) {
		result = append(result, s)
	})

	return result
}

func CountStates(roots []mdp.State, successors Successors) int {
	total := 0
	Visit(roots, successors, func(s mdp.State, depth int) { total++ })
	return total
}

func CountTerminalStates(roots []mdp.State, successors Successors) int {
	total := 0
	Visit(roots, successors, func(s mdp.State, depth int) {
		if s.IsTerminal() {
			total++
		}
	})

	return total
}

// MaxDepth returns the length of the longest shortest path from roots to
// any reachable state.
func MaxDepth(roots []mdp.State, successors Successors) int {
	result := 0
	Visit(roots, successors, func(s mdp.State, depth int) {
		if depth > result {
			result = depth
		}
	})

	return result
}
