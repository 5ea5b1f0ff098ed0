// Package ldbstore implements value tables and Q-tables that keep data
// on disk in a LevelDB database, rather than in memory.
//
// These implementations are substantially slower than mdp.ValueMap and
// mdp.QValueMap but can scale to state spaces that do not fit in memory.
// As with the in-memory tables, database errors during Get and Set are
// unrecoverable and panic.
package ldbstore
