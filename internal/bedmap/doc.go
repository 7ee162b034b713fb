// Package bedmap selects lines from a text stream by 1-based line ranges read
// from a second stream. It walks both streams once, in lockstep, and never
// holds more than one range and one line.
//
// It never imports app, cli, writers or source; keep it domain-only.
package bedmap
