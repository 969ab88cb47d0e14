// Package replay runs a command script against an in-process controller.
//
// A script has one command per line: "arm", "breach", "panic", or "disarm"
// and "reset" followed by a code. Blank lines and lines starting with '#'
// are skipped.
package replay
