package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, actorID int64, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, actorID int64, args []string) (string, error)
}
