package command

import (
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/dice"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/service/ask"
)

func NewCommands(
	roller *dice.Roller,
	askSvc *ask.Service,
) []core.Command {
	commands := []core.Command{
		NewRollCommand(roller),
		NewAskCommand(askSvc),
		NewSourcesCommand(askSvc),
		NewRecentCommand(askSvc),
	}
	return append(commands, NewHelpCommand(commands))
}
