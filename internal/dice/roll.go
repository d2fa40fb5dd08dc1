package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
)

// Source draws a single uniform value in [1, sides]. Implementations must be
// safe for concurrent use.
type Source interface {
	Roll(sides int) (int, error)
}

type cryptoSource struct{}

func (cryptoSource) Roll(sides int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(sides)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(n.Int64()) + 1, nil
}

// CryptoSource returns the default cryptographically secure source. Roll
// fairness is a user-trust property, so outcomes must not be predictable or
// seedable.
func CryptoSource() Source {
	return cryptoSource{}
}

// GroupResult holds the outcome of one dice group. Under
// advantage/disadvantage Rolls keeps both raw values even though only one
// contributes to Total.
type GroupResult struct {
	Count int
	Sides int
	Rolls []int
	Total int
}

// Result is a fully resolved multi-group roll.
type Result struct {
	Groups     []GroupResult
	Modifier   int
	Subtotal   int
	FinalTotal int
	Notation   string
}

// SimpleResult is the outcome of the single-group primitive with keep-N
// semantics. Rolls holds every drawn value, Kept the subset that counts.
type SimpleResult struct {
	Rolls      []int
	Kept       []int
	Total      int
	Modifier   int
	FinalTotal int
}

// Roller resolves parsed rolls against an injected randomness source.
type Roller struct {
	src Source
}

// NewRoller returns a Roller backed by src, or by CryptoSource when src is
// nil.
func NewRoller(src Source) *Roller {
	if src == nil {
		src = cryptoSource{}
	}
	return &Roller{src: src}
}

// Resolve rolls every group of a parsed notation. Advantage and disadvantage
// apply to the first group only and require it to be a single die: two values
// are drawn and the max (advantage) or min (disadvantage) is kept.
func (r *Roller) Resolve(parsed ParsedRoll, advantage, disadvantage bool) (Result, error) {
	if advantage && disadvantage {
		return Result{}, ErrConflictingModifiers
	}
	if (advantage || disadvantage) && len(parsed.Groups) > 0 && parsed.Groups[0].Count != 1 {
		return Result{}, fmt.Errorf("%w (e.g. 1d20), not %s", ErrUnsupportedModifierShape, parsed.Groups[0])
	}

	groups := make([]GroupResult, 0, len(parsed.Groups))
	for i, g := range parsed.Groups {
		if i == 0 && (advantage || disadvantage) {
			first, err := r.src.Roll(g.Sides)
			if err != nil {
				return Result{}, err
			}
			second, err := r.src.Roll(g.Sides)
			if err != nil {
				return Result{}, err
			}

			total := first
			if advantage && second > total || disadvantage && second < total {
				total = second
			}

			groups = append(groups, GroupResult{
				Count: g.Count,
				Sides: g.Sides,
				Rolls: []int{first, second},
				Total: total,
			})
			continue
		}

		rolls := make([]int, g.Count)
		total := 0
		for j := range rolls {
			v, err := r.src.Roll(g.Sides)
			if err != nil {
				return Result{}, err
			}
			rolls[j] = v
			total += v
		}
		groups = append(groups, GroupResult{
			Count: g.Count,
			Sides: g.Sides,
			Rolls: rolls,
			Total: total,
		})
	}

	subtotal := 0
	for _, g := range groups {
		subtotal += g.Total
	}

	return Result{
		Groups:     groups,
		Modifier:   parsed.Modifier,
		Subtotal:   subtotal,
		FinalTotal: subtotal + parsed.Modifier,
		Notation:   Format(parsed),
	}, nil
}

// RollSimple rolls a single dice group with optional keep-highest or
// keep-lowest semantics. keepHighest and keepLowest are mutually exclusive
// and bounded by count; zero means keep everything.
func (r *Roller) RollSimple(count, sides, modifier, keepHighest, keepLowest int) (SimpleResult, error) {
	if count < 1 || count > MaxDice {
		return SimpleResult{}, fmt.Errorf("%w: count must be between 1 and %d (got %d)", ErrInvalidDiceCount, MaxDice, count)
	}
	if sides < MinSides {
		return SimpleResult{}, fmt.Errorf("%w: dice must have at least %d sides (got %d)", ErrInvalidDiceSides, MinSides, sides)
	}
	if keepHighest < 0 || keepLowest < 0 {
		return SimpleResult{}, fmt.Errorf("%w: keep values cannot be negative", ErrInvalidKeepCount)
	}
	if keepHighest > 0 && keepLowest > 0 {
		return SimpleResult{}, fmt.Errorf("%w: cannot keep highest and lowest simultaneously", ErrInvalidKeepCount)
	}

	keep := keepHighest
	if keepLowest > 0 {
		keep = keepLowest
	}
	if keep > count {
		return SimpleResult{}, fmt.Errorf("%w: cannot keep more dice than rolled (%d > %d)", ErrInvalidKeepCount, keep, count)
	}

	rolls := make([]int, count)
	for i := range rolls {
		v, err := r.src.Roll(sides)
		if err != nil {
			return SimpleResult{}, err
		}
		rolls[i] = v
	}

	kept := rolls
	if keep > 0 {
		sorted := make([]int, len(rolls))
		copy(sorted, rolls)
		if keepHighest > 0 {
			sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		} else {
			sort.Ints(sorted)
		}
		kept = sorted[:keep]
	}

	total := 0
	for _, v := range kept {
		total += v
	}

	return SimpleResult{
		Rolls:      rolls,
		Kept:       kept,
		Total:      total,
		Modifier:   modifier,
		FinalTotal: total + modifier,
	}, nil
}
