package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/dice"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

const (
	defaultNotation = "1d20"
	maxCommentLen   = 100
)

// notationToken matches pieces of dice notation so "/roll 2d20 + 5 Attack"
// can tell where the notation ends and the comment begins.
var notationToken = regexp.MustCompile(`^[0-9dD+\-]+$`)

type RollCommand struct {
	roller    *dice.Roller
	formatter *ResponseFormatter
}

func NewRollCommand(roller *dice.Roller) *RollCommand {
	return &RollCommand{
		roller:    roller,
		formatter: NewResponseFormatter(),
	}
}

func (c *RollCommand) Name() string {
	return "roll"
}

func (c *RollCommand) Description() string {
	return "Roll dice, e.g. /roll 2d20+5, /roll 1d20 adv Attack roll"
}

func (c *RollCommand) Execute(ctx context.Context, actorID int64, args []string) (string, error) {
	notation, advantage, disadvantage, comment := splitRollArgs(args)
	if len(comment) > maxCommentLen {
		return "", fmt.Errorf("comment must be %d characters or less", maxCommentLen)
	}

	parsed, err := dice.Parse(notation)
	if err != nil {
		return "", err
	}

	result, err := c.roller.Resolve(parsed, advantage, disadvantage)
	if err != nil {
		return "", err
	}

	mode := ""
	switch {
	case advantage:
		mode = " (advantage)"
	case disadvantage:
		mode = " (disadvantage)"
	}
	log.FromCtx(ctx).Info().
		Int64("user_id", actorID).
		Str("notation", result.Notation).
		Int("total", result.FinalTotal).
		Msgf("dice roll%s", mode)

	return c.format(result, advantage, disadvantage, comment), nil
}

// splitRollArgs separates notation tokens, the adv/dis flags and the trailing
// comment. Missing notation falls back to 1d20.
func splitRollArgs(args []string) (notation string, advantage, disadvantage bool, comment string) {
	var notationParts []string
	rest := args

	for len(rest) > 0 && notationToken.MatchString(rest[0]) {
		notationParts = append(notationParts, rest[0])
		rest = rest[1:]
	}

	for len(rest) > 0 {
		switch strings.ToLower(rest[0]) {
		case "adv", "advantage":
			advantage = true
		case "dis", "disadvantage":
			disadvantage = true
		default:
			comment = strings.Join(rest, " ")
			rest = nil
			continue
		}
		rest = rest[1:]
	}

	notation = strings.Join(notationParts, " ")
	if notation == "" {
		notation = defaultNotation
	}
	return notation, advantage, disadvantage, comment
}

func (c *RollCommand) format(result dice.Result, advantage, disadvantage bool, comment string) string {
	title := result.Notation
	if comment != "" {
		title = comment
	}

	var sb strings.Builder
	sb.WriteString(c.formatter.Title("🎲", title))

	for i, group := range result.Groups {
		name := fmt.Sprintf("%dd%d", group.Count, group.Sides)
		rolls := formatRolls(group)
		if i == 0 && advantage {
			name += " (Advantage)"
		}
		if i == 0 && disadvantage {
			name += " (Disadvantage)"
		}
		sb.WriteString(fmt.Sprintf("**%s**: %s = **%d**\n", name, rolls, group.Total))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Total**: %s = **%d**\n", formatCalculation(result), result.FinalTotal))
	return sb.String()
}

// formatRolls renders a group's raw rolls, striking out the dropped die for
// advantage/disadvantage.
func formatRolls(group dice.GroupResult) string {
	if group.Count == 1 && len(group.Rolls) == 2 {
		kept := group.Total
		dropped := group.Rolls[0]
		if dropped == kept {
			dropped = group.Rolls[1]
		}
		return fmt.Sprintf("[~~%d~~, **%d**]", dropped, kept)
	}

	parts := make([]string, len(group.Rolls))
	for i, r := range group.Rolls {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatCalculation(result dice.Result) string {
	parts := make([]string, 0, len(result.Groups))
	for _, group := range result.Groups {
		parts = append(parts, fmt.Sprintf("%d", group.Total))
	}

	calc := strings.Join(parts, " + ")
	switch {
	case result.Modifier > 0:
		calc += fmt.Sprintf(" + %d", result.Modifier)
	case result.Modifier < 0:
		calc += fmt.Sprintf(" - %d", -result.Modifier)
	}
	return calc
}
