package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/dice"
)

// scriptedSource replays a fixed sequence of die values.
type scriptedSource struct {
	values []int
	pos    int
}

func (s *scriptedSource) Roll(sides int) (int, error) {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v, nil
}

func TestSplitRollArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		notation     string
		advantage    bool
		disadvantage bool
		comment      string
	}{
		{name: "empty defaults to 1d20", args: nil, notation: "1d20"},
		{name: "plain notation", args: []string{"2d6+3"}, notation: "2d6+3"},
		{
			name:     "spaced notation",
			args:     []string{"2d20", "+", "1d6", "+", "5"},
			notation: "2d20 + 1d6 + 5",
		},
		{
			name:      "advantage flag",
			args:      []string{"1d20", "adv"},
			notation:  "1d20",
			advantage: true,
		},
		{
			name:         "disadvantage long form",
			args:         []string{"1d20", "disadvantage"},
			notation:     "1d20",
			disadvantage: true,
		},
		{
			name:      "flag then comment",
			args:      []string{"1d20+7", "adv", "Attack", "roll"},
			notation:  "1d20+7",
			advantage: true,
			comment:   "Attack roll",
		},
		{
			name:     "comment only",
			args:     []string{"Perception", "check"},
			notation: "1d20",
			comment:  "Perception check",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notation, adv, dis, comment := splitRollArgs(tt.args)
			assert.Equal(t, tt.notation, notation)
			assert.Equal(t, tt.advantage, adv)
			assert.Equal(t, tt.disadvantage, dis)
			assert.Equal(t, tt.comment, comment)
		})
	}
}

func TestRollCommandExecute(t *testing.T) {
	t.Run("plain roll with modifier", func(t *testing.T) {
		cmd := NewRollCommand(dice.NewRoller(&scriptedSource{values: []int{12, 7}}))

		out, err := cmd.Execute(context.Background(), 1, []string{"2d6+3"})
		require.NoError(t, err)
		assert.Contains(t, out, "2d6 +3")
		assert.Contains(t, out, "[12, 7]")
		assert.Contains(t, out, "= **19**")
		assert.Contains(t, out, "19 + 3 = **22**")
	})

	t.Run("advantage strikes the dropped die", func(t *testing.T) {
		cmd := NewRollCommand(dice.NewRoller(&scriptedSource{values: []int{7, 18}}))

		out, err := cmd.Execute(context.Background(), 1, []string{"1d20", "adv"})
		require.NoError(t, err)
		assert.Contains(t, out, "1d20 (Advantage)")
		assert.Contains(t, out, "[~~7~~, **18**]")
		assert.Contains(t, out, "**Total**: 18 = **18**")
	})

	t.Run("comment becomes the title", func(t *testing.T) {
		cmd := NewRollCommand(dice.NewRoller(&scriptedSource{values: []int{10}}))

		out, err := cmd.Execute(context.Background(), 1, []string{"1d20", "Stealth", "check"})
		require.NoError(t, err)
		assert.Contains(t, out, "Stealth check")
	})

	t.Run("invalid notation", func(t *testing.T) {
		cmd := NewRollCommand(dice.NewRoller(&scriptedSource{values: []int{1}}))

		_, err := cmd.Execute(context.Background(), 1, []string{"0d20"})
		assert.ErrorIs(t, err, dice.ErrInvalidDiceCount)
	})

	t.Run("conflicting flags", func(t *testing.T) {
		cmd := NewRollCommand(dice.NewRoller(&scriptedSource{values: []int{1}}))

		_, err := cmd.Execute(context.Background(), 1, []string{"1d20", "adv", "dis"})
		assert.ErrorIs(t, err, dice.ErrConflictingModifiers)
	})

	t.Run("comment too long", func(t *testing.T) {
		cmd := NewRollCommand(dice.NewRoller(&scriptedSource{values: []int{1}}))

		_, err := cmd.Execute(context.Background(), 1, []string{"1d20", strings.Repeat("x", 101)})
		assert.Error(t, err)
	})
}
