package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// MaxDice is the maximum number of dice allowed in a single group.
	MaxDice = 100
	// MinSides is the minimum number of sides a die can have.
	MinSides = 2
)

// DefaultSides lists the standard Pathfinder dice. The front end uses it for
// suggestions only; the parser accepts any sides >= MinSides.
var DefaultSides = []int{4, 6, 8, 10, 12, 20, 100}

var (
	groupPattern    = regexp.MustCompile(`(\d+)d(\d+)`)
	modifierPattern = regexp.MustCompile(`[+-]\d+`)
)

// Group is a single homogeneous set of dice, e.g. "2d20".
type Group struct {
	Count int
	Sides int
}

func (g Group) String() string {
	return fmt.Sprintf("%dd%d", g.Count, g.Sides)
}

// ParsedRoll is the structured form of a dice notation string. Groups keep
// their left-to-right textual order; the first group is the one
// advantage/disadvantage applies to.
type ParsedRoll struct {
	Groups   []Group
	Modifier int
}

// Parse turns a notation string like "2d20 + 1d6 + 5" into a ParsedRoll.
// Whitespace is insignificant and matching is case-insensitive. Every
// "NdM" substring becomes a dice group; every signed integer that is not
// part of a group contributes to the modifier.
func Parse(notation string) (ParsedRoll, error) {
	clean := strings.ToLower(stripSpace(notation))
	if clean == "" {
		return ParsedRoll{}, fmt.Errorf("%w: notation cannot be empty", ErrInvalidNotation)
	}

	groupSpans := groupPattern.FindAllStringSubmatchIndex(clean, -1)
	if len(groupSpans) == 0 {
		return ParsedRoll{}, fmt.Errorf("%w: expected a pattern like 2d20 or 1d6+5", ErrInvalidNotation)
	}

	groups := make([]Group, 0, len(groupSpans))
	for _, span := range groupSpans {
		count, err := strconv.Atoi(clean[span[2]:span[3]])
		if err != nil {
			return ParsedRoll{}, fmt.Errorf("%w: %q", ErrInvalidDiceCount, clean[span[2]:span[3]])
		}
		sides, err := strconv.Atoi(clean[span[4]:span[5]])
		if err != nil {
			return ParsedRoll{}, fmt.Errorf("%w: %q", ErrInvalidDiceSides, clean[span[4]:span[5]])
		}

		if count < 1 || count > MaxDice {
			return ParsedRoll{}, fmt.Errorf("%w: count must be between 1 and %d (got %d)", ErrInvalidDiceCount, MaxDice, count)
		}
		if sides < MinSides {
			return ParsedRoll{}, fmt.Errorf("%w: dice must have at least %d sides (got %d)", ErrInvalidDiceSides, MinSides, sides)
		}

		groups = append(groups, Group{Count: count, Sides: sides})
	}

	modifier := 0
	for _, span := range modifierPattern.FindAllStringIndex(clean, -1) {
		if overlapsAny(span[0], span[1], groupSpans) {
			continue
		}
		term, err := strconv.Atoi(clean[span[0]:span[1]])
		if err != nil {
			return ParsedRoll{}, fmt.Errorf("%w: bad modifier %q", ErrInvalidNotation, clean[span[0]:span[1]])
		}
		modifier += term
	}

	return ParsedRoll{Groups: groups, Modifier: modifier}, nil
}

// Format renders a ParsedRoll back into canonical notation: groups joined by
// a space, followed by the signed modifier when non-zero. Re-parsing the
// result yields an identical ParsedRoll.
func Format(parsed ParsedRoll) string {
	parts := make([]string, 0, len(parsed.Groups)+1)
	for _, g := range parsed.Groups {
		parts = append(parts, g.String())
	}
	if parsed.Modifier != 0 {
		parts = append(parts, fmt.Sprintf("%+d", parsed.Modifier))
	}
	return strings.Join(parts, " ")
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// overlapsAny reports whether [start, end) intersects any group match. A
// "+1" in "2d20+1d6" belongs to the second dice group, not the modifier.
func overlapsAny(start, end int, spans [][]int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
