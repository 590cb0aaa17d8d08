package trigger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tatianab/memory-dive/internal/lexicon"
)

// Kind tags a Resolution.
type Kind int

const (
	NoMatch Kind = iota
	Reveal
	Rejected
)

func (k Kind) String() string {
	switch k {
	case Reveal:
		return "reveal"
	case Rejected:
		return "rejected"
	default:
		return "no_match"
	}
}

// RefusalLine is shown when a rule's flags match a query that is not
// strictly valid.
const RefusalLine = "索引拒绝关联。The memory recoils: the shape is right, the words are not."

// Resolution is the outcome of resolving one query.
type Resolution struct {
	Kind Kind
	// Actions holds one node action, or one or more archive actions.
	Actions []Action
	// Rule names the first rule that matched.
	Rule string
	// Refusal is set for Rejected resolutions.
	Refusal string
}

// Resolver evaluates the three rule tables in their fixed order.
type Resolver struct {
	nodes     []Rule
	archives  []Rule
	secondary []Rule
}

// NewResolver returns a resolver over the authored tables.
func NewResolver() *Resolver {
	return &Resolver{nodes: NodeRules, archives: ArchiveRules, secondary: SecondaryRules}
}

// Rules returns every rule in evaluation order.
func (r *Resolver) Rules() []Rule {
	out := make([]Rule, 0, len(r.nodes)+len(r.archives)+len(r.secondary))
	out = append(out, r.nodes...)
	out = append(out, r.archives...)
	return append(out, r.secondary...)
}

// Resolve scans node rules, then year+person archive rules, then the
// ungated year+place rules.
func (r *Resolver) Resolve(fs lexicon.Flags, valid bool) Resolution {
	for _, rule := range r.nodes {
		if !rule.When.Eval(fs) {
			continue
		}
		if rule.Gated && !valid {
			return rejected(rule, fs)
		}
		return Resolution{Kind: Reveal, Actions: []Action{rule.Action}, Rule: rule.Name}
	}

	if res, ok := collect(r.archives, fs, valid); ok {
		return res
	}
	if res, ok := collect(r.secondary, fs, valid); ok {
		return res
	}
	return Resolution{Kind: NoMatch}
}

func collect(rules []Rule, fs lexicon.Flags, valid bool) (Resolution, bool) {
	var res Resolution
	for _, rule := range rules {
		if !rule.When.Eval(fs) {
			continue
		}
		if rule.Gated && !valid {
			return rejected(rule, fs), true
		}
		if res.Rule == "" {
			res.Rule = rule.Name
		}
		res.Actions = append(res.Actions, rule.Action)
	}
	if len(res.Actions) == 0 {
		return Resolution{}, false
	}
	res.Kind = Reveal
	return res, true
}

func rejected(rule Rule, fs lexicon.Flags) Resolution {
	return Resolution{
		Kind:    Rejected,
		Rule:    rule.Name,
		Refusal: fmt.Sprintf("%s [%s]", RefusalLine, strings.Join(fs.Names(), ", ")),
	}
}

// Validate checks that every rule target exists in the story table. It is
// meant to run once when tables are loaded.
func Validate(rules []Rule, exists func(Action) bool) error {
	var errs []error
	for _, rule := range rules {
		if !exists(rule.Action) {
			errs = append(errs, fmt.Errorf("rule %s: unknown %s %q", rule.Name, rule.Action.Kind, rule.Action.ID))
		}
	}
	return errors.Join(errs...)
}
