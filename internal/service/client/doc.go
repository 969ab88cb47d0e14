// Package client sends a single command from the console to the security
// panel server and reports the resulting state.
package client
