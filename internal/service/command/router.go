package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	r := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

// Execute dispatches a "/name args..." input. The second return value is
// false when the input is not a command at all.
func (r *Router) Execute(ctx context.Context, actorID int64, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	// Telegram appends "@botname" in group chats.
	if at := strings.Index(name, "@"); at != -1 {
		name = name[:at]
	}
	args := parts[1:]

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Try /help.", name), true
	}

	result, err := cmd.Execute(ctx, actorID, args)
	if err != nil {
		return NewResponseFormatter().Error(err), true
	}
	return result, true
}

func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		res = append(res, cmd)
	}
	return res
}
