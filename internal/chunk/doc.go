// Package chunk streams a text file as consecutive groups of lines.
//
// A [Reader] yields [Chunk] values lazily, one fixed-size group of lines at a
// time, preserving every byte of the original file including line
// terminators. The final chunk holds whatever lines remain. Input must be
// valid UTF-8.
package chunk
