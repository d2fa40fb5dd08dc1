package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
)

type HelpCommand struct {
	commands  []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(commands []core.Command) *HelpCommand {
	return &HelpCommand{
		commands:  commands,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, actorID int64, args []string) (string, error) {
	cmds := make([]core.Command, len(c.commands))
	copy(cmds, c.commands)
	cmds = append(cmds, c)

	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("/%s — %s", cmd.Name(), cmd.Description()))
	}

	var sb strings.Builder
	sb.WriteString(c.formatter.Title("🎲", "Pathfinder Assistant"))
	sb.WriteString(c.formatter.List(items))
	return sb.String(), nil
}
