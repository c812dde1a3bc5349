// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, a fixed service attribute and per-request trace ids
// carried through the context.
package logger
