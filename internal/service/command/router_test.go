package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
)

type fakeCommand struct {
	name   string
	result string
	err    error
	args   []string
}

func (c *fakeCommand) Name() string        { return c.name }
func (c *fakeCommand) Description() string { return "fake" }

func (c *fakeCommand) Execute(ctx context.Context, actorID int64, args []string) (string, error) {
	c.args = args
	return c.result, c.err
}

func TestRouterExecute(t *testing.T) {
	ping := &fakeCommand{name: "ping", result: "pong"}
	boom := &fakeCommand{name: "boom", err: errors.New("it broke")}
	router := New([]core.Command{ping, boom})

	t.Run("dispatches with args", func(t *testing.T) {
		out, handled := router.Execute(context.Background(), 1, "/ping one two")
		assert.True(t, handled)
		assert.Equal(t, "pong", out)
		assert.Equal(t, []string{"one", "two"}, ping.args)
	})

	t.Run("strips bot mention", func(t *testing.T) {
		out, handled := router.Execute(context.Background(), 1, "/ping@PathfinderBot")
		assert.True(t, handled)
		assert.Equal(t, "pong", out)
	})

	t.Run("unknown command", func(t *testing.T) {
		out, handled := router.Execute(context.Background(), 1, "/missing")
		assert.True(t, handled)
		assert.Contains(t, out, "Unknown command: /missing")
	})

	t.Run("not a command", func(t *testing.T) {
		out, handled := router.Execute(context.Background(), 1, "just chatting")
		assert.False(t, handled)
		assert.Empty(t, out)
	})

	t.Run("command error is formatted", func(t *testing.T) {
		out, handled := router.Execute(context.Background(), 1, "/boom")
		assert.True(t, handled)
		assert.Contains(t, out, "❌")
		assert.Contains(t, out, "it broke")
	})
}

func TestRouterListCommands(t *testing.T) {
	router := New([]core.Command{
		&fakeCommand{name: "a"},
		&fakeCommand{name: "b"},
	})

	names := make(map[string]bool)
	for _, cmd := range router.ListCommands() {
		names[cmd.Name()] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, names)
}
