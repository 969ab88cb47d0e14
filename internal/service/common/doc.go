// Package common holds helpers shared by the console services.
//
// It provides a gRPC client for the security panel with per-call timeouts and
// a helper detecting the current system actor (hostname/username) for audit
// logging on the server.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
