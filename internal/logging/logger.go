// Package logging is the structured logger shared by the daemon and the CLI.
// Every call takes the request context so handlers can pick up
// context-scoped attributes.
package logging

import "context"

// Logger logs a message followed by alternating key/value args:
//
//	log.Info(ctx, "deletions delivered", "count", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
