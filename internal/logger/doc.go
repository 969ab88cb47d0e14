// Package logger wraps zap with a global sugared console logger, context
// helpers (ToContext, FromContext, WithName, WithKV) and level parsing.
//
// Code receives a context and extracts the logger from it, so request scoped
// fields such as the issuing actor or the command follow every log line.
package logger
