// Package rule parses, formats and transforms Life-like and Generations rule
// strings such as "B3/S23" or "B2/S/C3".
package rule

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidRule reports a rule string that matches neither accepted grammar.
var ErrInvalidRule = errors.New("rule: invalid rule string")

// MaxCycle bounds the Generations state count so aging values fit in an int16
// cell.
const MaxCycle = math.MaxInt16

var (
	standardForm = regexp.MustCompile(`^B\d*/S\d*(/[CG]?\d*)?$`)
	legacyForm   = regexp.MustCompile(`^\d*/\d*(/\d*)?$`)
)

// Counts is a set of neighbor counts in 0..8.
type Counts uint16

// CountsOf builds a set from the given counts. Values outside 0..8 are ignored.
func CountsOf(values ...int) Counts {
	var c Counts
	for _, v := range values {
		if v >= 0 && v <= 8 {
			c |= 1 << v
		}
	}
	return c
}

// Has reports whether n is in the set.
func (c Counts) Has(n int) bool {
	return n >= 0 && n <= 8 && c&(1<<n) != 0
}

// Values lists the members in ascending order.
func (c Counts) Values() []int {
	out := make([]int, 0, bits.OnesCount16(uint16(c)))
	for n := 0; n <= 8; n++ {
		if c.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Max returns the highest member, or -1 for the empty set.
func (c Counts) Max() int {
	return bits.Len16(uint16(c)) - 1
}

func (c Counts) String() string {
	var b strings.Builder
	for _, n := range c.Values() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// reversed maps every count missing from c to 8-count.
func (c Counts) reversed() Counts {
	var out Counts
	for n := 0; n <= 8; n++ {
		if !c.Has(n) {
			out |= 1 << (8 - n)
		}
	}
	return out
}

// Rule is a birth/survival rule with a Generations cycle. Cycle 2 is plain
// Life; larger cycles add aging states 2..Cycle-1.
type Rule struct {
	Born     Counts
	Survival Counts
	Cycle    int
}

// Conway is B3/S23.
var Conway = Rule{Born: CountsOf(3), Survival: CountsOf(2, 3), Cycle: 2}

// Parse reads a rule in "B<digits>/S<digits>[/[C|G]<cycle>]" form or the
// legacy "<survival>/<born>[/<cycle>]" form. Surrounding whitespace is
// ignored, members are sorted and deduplicated, and the cycle is raised to at
// least 2.
func Parse(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	legacy := legacyForm.MatchString(s)
	if !legacy && !standardForm.MatchString(s) {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	stripped := strings.Map(func(r rune) rune {
		if r == '/' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
	segs := strings.Split(stripped, "/")

	born, err := parseCounts(segs[0])
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
	}
	survival, err := parseCounts(segs[1])
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
	}
	if legacy {
		born, survival = survival, born
	}

	cycle := 2
	if len(segs) > 2 && segs[2] != "" {
		n, err := strconv.Atoi(segs[2])
		if err != nil || n > MaxCycle {
			return Rule{}, fmt.Errorf("%w: %q: cycle out of range", ErrInvalidRule, s)
		}
		cycle = max(n, 2)
	}
	return Rule{Born: born, Survival: survival, Cycle: cycle}, nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string) Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseCounts(digits string) (Counts, error) {
	var c Counts
	for _, d := range digits {
		n := int(d - '0')
		if n > 8 {
			return 0, fmt.Errorf("neighbor count %d above 8", n)
		}
		c |= 1 << n
	}
	return c, nil
}

// String formats the canonical form, e.g. "B37/S012468/C18".
func (r Rule) String() string {
	s := "B" + r.Born.String() + "/S" + r.Survival.String()
	if r.Cycle > 2 {
		s += "/C" + strconv.Itoa(r.Cycle)
	}
	return s
}

// Reversal returns the rule that runs the automaton with live and dead
// swapped: each set is complemented, mirrored with n -> 8-n, and the roles of
// born and survival are exchanged. Applying it twice yields the original.
func (r Rule) Reversal() Rule {
	return Rule{
		Born:     r.Survival.reversed(),
		Survival: r.Born.reversed(),
		Cycle:    r.Cycle,
	}
}

// Borns reports whether a dead cell with n live neighbors comes alive.
func (r Rule) Borns(n int) bool { return r.Born.Has(n) }

// Survives reports whether a live cell with n live neighbors stays alive.
func (r Rule) Survives(n int) bool { return r.Survival.Has(n) }

// MaxCount is the highest count either set can match, or -1 when both are
// empty. Neighbor counting can stop once it passes this value.
func (r Rule) MaxCount() int {
	return (r.Born | r.Survival).Max()
}

// Generations reports whether the rule has aging states.
func (r Rule) Generations() bool { return r.Cycle > 2 }
