// Package buttons holds the slices behind the buttons demo: a counter with
// increment and decrement, and a message that cycles through a fixed list.
//
// Both slices are package-level values so every store built with [Slices]
// shares the same action creators.
package buttons
