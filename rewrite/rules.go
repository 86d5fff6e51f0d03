// Package rewrite normalizes superseded hosting addresses in document text to
// one canonical domain.
//
// Rules are applied strictly in order. A rule whose match target is contained
// in a later rule's target (for example a bare host before host+path) would
// rewrite the host and leave the path behind, producing a malformed URL, so
// rule sets must be ordered most-specific-first. NewRuleSet enforces this and
// never re-sorts on the caller's behalf.
package rewrite

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrRuleOrder is returned when a less specific rule precedes a rule whose
// target it would corrupt.
var ErrRuleOrder = errors.New("rewrite: rules must be ordered most-specific-first")

// Product defaults: the legacy GitHub Pages hosts, most specific first.
const DefaultCorrectDomain = "https://www.steadiday.com"

var DefaultWrongDomains = []string{
	"https://scm-solutions-llc.github.io/steadiday",
	"https://scm-solutions-llc.github.io",
	"http://scm-solutions-llc.github.io/steadiday",
	"http://scm-solutions-llc.github.io",
}

// Rule is one compiled pattern. Matches are replaced by the rule set's
// correct domain.
type Rule struct {
	Pattern string
	re      *regexp.Regexp
}

// RuleSet is an immutable, validated, ordered list of rules.
type RuleSet struct {
	correct string
	rules   []Rule
}

// NewRuleSet compiles patterns (regular expressions) in the given order and
// validates the ordering invariant.
func NewRuleSet(correct string, patterns ...string) (*RuleSet, error) {
	if correct == "" {
		return nil, errors.New("rewrite: correct domain is required")
	}
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("rewrite: compile %q: %w", p, err)
		}
		rules = append(rules, Rule{Pattern: p, re: re})
	}
	if err := checkOrder(rules); err != nil {
		return nil, err
	}
	return &RuleSet{correct: correct, rules: rules}, nil
}

// LiteralRuleSet builds a rule set from plain URL literals, quoting each one.
func LiteralRuleSet(correct string, literals ...string) (*RuleSet, error) {
	patterns := make([]string, len(literals))
	for i, l := range literals {
		patterns[i] = regexp.QuoteMeta(l)
	}
	return NewRuleSet(correct, patterns...)
}

// Correct returns the canonical domain every match is rewritten to.
func (rs *RuleSet) Correct() string {
	return rs.correct
}

// Patterns returns the rule patterns in application order.
func (rs *RuleSet) Patterns() []string {
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Pattern
	}
	return out
}

// checkOrder rejects a rule i that matches a strict part of the literal
// target of some later rule j. Only rules with a fully literal pattern can be
// checked as targets; regex targets are trusted.
func checkOrder(rules []Rule) error {
	for j := 1; j < len(rules); j++ {
		target, complete := rules[j].re.LiteralPrefix()
		if !complete || target == "" {
			continue
		}
		for i := 0; i < j; i++ {
			loc := rules[i].re.FindStringIndex(target)
			if loc == nil {
				continue
			}
			if loc[1]-loc[0] < len(target) {
				return fmt.Errorf("%w: %q (rule %d) would corrupt %q (rule %d)",
					ErrRuleOrder, rules[i].Pattern, i, rules[j].Pattern, j)
			}
		}
	}
	return nil
}
