// Package trigger maps feature flags to story actions through an ordered
// table of compound rules.
package trigger

import (
	"strings"

	"github.com/tatianab/memory-dive/internal/lexicon"
)

// Op combines the flags of a predicate.
type Op int

const (
	All Op = iota
	AnyOf
)

// Predicate is a conjunction or disjunction of one or two flags.
type Predicate struct {
	Op    Op
	Flags []lexicon.Flag
}

// Eval tests the predicate against fs.
func (p Predicate) Eval(fs lexicon.Flags) bool {
	if len(p.Flags) == 0 {
		return false
	}
	for _, f := range p.Flags {
		has := fs.Has(f)
		if p.Op == AnyOf && has {
			return true
		}
		if p.Op == All && !has {
			return false
		}
	}
	return p.Op == All
}

func (p Predicate) String() string {
	sep := " && "
	if p.Op == AnyOf {
		sep = " || "
	}
	names := make([]string, len(p.Flags))
	for i, f := range p.Flags {
		names[i] = f.String()
	}
	return strings.Join(names, sep)
}

func both(a, b lexicon.Flag) Predicate   { return Predicate{Op: All, Flags: []lexicon.Flag{a, b}} }
func either(a, b lexicon.Flag) Predicate { return Predicate{Op: AnyOf, Flags: []lexicon.Flag{a, b}} }

// ActionKind says which namespace an action targets.
type ActionKind int

const (
	RevealNode ActionKind = iota
	RevealArchive
)

func (k ActionKind) String() string {
	if k == RevealArchive {
		return "archive"
	}
	return "node"
}

// Action is what a matched rule asks the state machine to do.
type Action struct {
	Kind ActionKind
	ID   string
}

// Rule is one row of a trigger table.
type Rule struct {
	Name   string
	When   Predicate
	Action Action
	// Gated rules only fire on strictly valid queries.
	Gated bool
}

func node(name string, when Predicate, id string) Rule {
	return Rule{Name: name, When: when, Action: Action{Kind: RevealNode, ID: id}, Gated: true}
}

func archive(name string, when Predicate, id string, gated bool) Rule {
	return Rule{Name: name, When: when, Action: Action{Kind: RevealArchive, ID: id}, Gated: gated}
}

// NodeRules are scanned first, in order; the first match ends resolution.
var NodeRules = []Rule{
	node("maine_small_bank", both(lexicon.FlagMaine, lexicon.FlagSmallBank), "confession_1"),
	node("ohio_ritual", either(lexicon.FlagOhio, lexicon.FlagRitual), "confession_2"),
	node("mojave_tape", both(lexicon.FlagMojave, lexicon.FlagTape), "confession_3"),
	node("old_dominion_fire", both(lexicon.FlagOldDominion, lexicon.FlagFire), "confession_4"),
	node("reggie_hospital", both(lexicon.FlagDrReggie, lexicon.FlagHospital), "confession_5"),
	node("lighthouse_father", both(lexicon.FlagLighthouse, lexicon.FlagFather), "confession_6"),
	node("kansas_city_motel", both(lexicon.FlagKansasCity, lexicon.FlagMotel), "confession_7"),
	node("vanessa_derek", both(lexicon.FlagVanessa, lexicon.FlagLittleDerek), "confession_8"),
}

// ArchiveRules pair a year with a person. Every matching rule fires, behind
// a single validity check.
var ArchiveRules = []Rule{
	archive("derek_1971", both(lexicon.FlagYear1971, lexicon.FlagLittleDerek), "archive_1971_derek", true),
	archive("capone_1973", both(lexicon.FlagYear1973, lexicon.FlagCapone), "archive_1973_capone", true),
	archive("father_1973", both(lexicon.FlagYear1973, lexicon.FlagFather), "archive_1973_father", true),
	archive("reggie_1979", both(lexicon.FlagYear1979, lexicon.FlagDrReggie), "archive_1979_reggie", true),
}

// SecondaryRules pair a year with a place and skip the validity gate.
var SecondaryRules = []Rule{
	archive("kansas_city_1976", both(lexicon.FlagYear1976, lexicon.FlagKansasCity), "archive_1976_kansas_city", false),
	archive("mojave_1984", both(lexicon.FlagYear1984, lexicon.FlagMojave), "archive_1984_mojave", false),
}
