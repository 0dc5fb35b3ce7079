// Package memory provides the in-memory stores for UserHub.
//
// Both stores are purely in-process: no disk or network IO, and every
// operation is atomic with respect to other operations on the same store.
// Read-modify-write sequences (uniqueness check then insert) run inside a
// single critical section and can never interleave.
package memory
