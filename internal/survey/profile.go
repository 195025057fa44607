package survey

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code is a normalized scale code such as "SS" or "STS".
type Code string

// Bucket is one side of the three-way rollup.
type Bucket string

const (
	Positive Bucket = "positive"
	Neutral  Bucket = "neutral"
	Negative Bucket = "negative"
)

// Buckets lists the rollup buckets in reporting order.
var Buckets = []Bucket{Positive, Neutral, Negative}

var ErrInvalidProfile = errors.New("invalid profile")

// Level is one declared scale code with its ordinal score.
type Level struct {
	Code  Code
	Score float64
}

// Profile fixes the label set, scoring table and rollup used by an Aggregator.
// Declaration order of Levels is the tie-break order for every ranking query.
type Profile struct {
	Name   string
	Levels []Level
	Rollup map[Code]Bucket
}

var upper = cases.Upper(language.Und)

// NormalizeCode trims and upper-cases a raw cell value.
func NormalizeCode(raw string) Code {
	return Code(upper.String(strings.TrimSpace(raw)))
}

// AnswerProfile is the query-script variant: six codes scored 6..1 with CS neutral.
func AnswerProfile() Profile {
	return Profile{
		Name: "answer",
		Levels: []Level{
			{Code: "SS", Score: 6},
			{Code: "S", Score: 5},
			{Code: "CS", Score: 4},
			{Code: "CTS", Score: 3},
			{Code: "TS", Score: 2},
			{Code: "STS", Score: 1},
		},
		Rollup: map[Code]Bucket{
			"SS":  Positive,
			"S":   Positive,
			"CS":  Neutral,
			"CTS": Negative,
			"TS":  Negative,
			"STS": Negative,
		},
	}
}

// DashboardProfile is the dashboard variant: N replaces CTS, S and CS tie at 4
// and CS rolls up to Positive.
func DashboardProfile() Profile {
	return Profile{
		Name: "dashboard",
		Levels: []Level{
			{Code: "SS", Score: 5},
			{Code: "S", Score: 4},
			{Code: "CS", Score: 4},
			{Code: "N", Score: 3},
			{Code: "TS", Score: 2},
			{Code: "STS", Score: 1},
		},
		Rollup: map[Code]Bucket{
			"SS":  Positive,
			"S":   Positive,
			"CS":  Positive,
			"N":   Neutral,
			"TS":  Negative,
			"STS": Negative,
		},
	}
}

// BuiltinProfiles returns the built-in profiles keyed by name.
func BuiltinProfiles() map[string]Profile {
	a, d := AnswerProfile(), DashboardProfile()
	return map[string]Profile{a.Name: a, d.Name: d}
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, error) {
	p, ok := BuiltinProfiles()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown profile %q", ErrInvalidProfile, name)
	}
	return p, nil
}

// Validate checks that every level is declared once and sits in exactly one bucket.
func (p Profile) Validate() error {
	if len(p.Levels) == 0 {
		return fmt.Errorf("%w: %s declares no levels", ErrInvalidProfile, p.Name)
	}
	seen := make(map[Code]bool, len(p.Levels))
	for _, l := range p.Levels {
		c := NormalizeCode(string(l.Code))
		if c == "" {
			return fmt.Errorf("%w: %s has an empty code", ErrInvalidProfile, p.Name)
		}
		if c != l.Code {
			return fmt.Errorf("%w: %s code %q is not normalized", ErrInvalidProfile, p.Name, l.Code)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidProfile, p.Name, c)
		}
		seen[c] = true

		b, ok := p.Rollup[c]
		if !ok {
			return fmt.Errorf("%w: %s has no bucket for %q", ErrInvalidProfile, p.Name, c)
		}
		if b != Positive && b != Neutral && b != Negative {
			return fmt.Errorf("%w: %s maps %q to unknown bucket %q", ErrInvalidProfile, p.Name, c, b)
		}
	}
	for c := range p.Rollup {
		if !seen[c] {
			return fmt.Errorf("%w: %s rolls up undeclared code %q", ErrInvalidProfile, p.Name, c)
		}
	}
	return nil
}

// Lookup reports the position of a raw cell value among the declared levels.
func (p Profile) Lookup(raw string) (int, bool) {
	c := NormalizeCode(raw)
	for i, l := range p.Levels {
		if l.Code == c {
			return i, true
		}
	}
	return -1, false
}

// Codes returns the declared codes in order.
func (p Profile) Codes() []Code {
	out := make([]Code, len(p.Levels))
	for i, l := range p.Levels {
		out[i] = l.Code
	}
	return out
}

// MaxScore is the largest declared score.
func (p Profile) MaxScore() float64 {
	var m float64
	for _, l := range p.Levels {
		if l.Score > m {
			m = l.Score
		}
	}
	return m
}

// Members returns the codes assigned to a bucket, in declaration order.
func (p Profile) Members(b Bucket) []Code {
	var out []Code
	for _, l := range p.Levels {
		if p.Rollup[l.Code] == b {
			out = append(out, l.Code)
		}
	}
	return out
}
