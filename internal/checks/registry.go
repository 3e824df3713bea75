// Package checks holds the quality-control rule registry, the runner that
// isolates rule failures, and the built-in workbook rules.
package checks

import (
	"fmt"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

// CheckFunc evaluates one rule against a parsed workbook. A returned error
// marks the rule itself as broken; the runner converts it into a failing
// outcome instead of letting it propagate.
type CheckFunc func(wb driven.Workbook) (domain.Outcome, error)

// Entry is one named rule in the registry.
type Entry struct {
	Name  string
	Check CheckFunc
}

// Registry is an ordered collection of named rules. Names are unique and
// iteration order is insertion order, so reports and logs are reproducible
// across runs. Registration happens explicitly at construction time.
type Registry struct {
	entries []Entry
	names   map[string]struct{}
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register appends a rule. Duplicate names are rejected with
// domain.ErrDuplicateCheck.
func (r *Registry) Register(name string, check CheckFunc) error {
	if name == "" || check == nil {
		return domain.ErrInvalidInput
	}
	if _, exists := r.names[name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCheck, name)
	}
	r.names[name] = struct{}{}
	r.entries = append(r.entries, Entry{Name: name, Check: check})
	return nil
}

// MustRegister is Register for fixed built-in rule sets, panicking on the
// programming error of a duplicate name.
func (r *Registry) MustRegister(name string, check CheckFunc) {
	if err := r.Register(name, check); err != nil {
		panic(err)
	}
}

// Entries returns the registered rules in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.entries)
}

// NamedOutcome pairs a rule name with its evaluation outcome.
type NamedOutcome struct {
	Name    string
	Outcome domain.Outcome
}

// RunOne evaluates a single rule. Errors returned by the rule, and panics
// inside it, are converted into a failing outcome whose description names
// the rule; they never escape.
func RunOne(entry Entry, wb driven.Workbook) (out domain.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.L().Errorw("check panicked", "check", entry.Name, "panic", rec)
			out = failedOutcome(entry.Name, fmt.Sprintf("%v", rec))
		}
	}()

	outcome, err := entry.Check(wb)
	if err != nil {
		logging.L().Errorw("check failed", "check", entry.Name, "error", err)
		return failedOutcome(entry.Name, err.Error())
	}
	return outcome
}

// RunAll evaluates every registered rule in order. The output always has
// one outcome per registered rule; one rule's failure never prevents the
// remaining rules from running.
func RunAll(r *Registry, wb driven.Workbook) []NamedOutcome {
	outcomes := make([]NamedOutcome, 0, len(r.entries))
	for _, entry := range r.entries {
		outcomes = append(outcomes, NamedOutcome{
			Name:    entry.Name,
			Outcome: RunOne(entry, wb),
		})
	}
	return outcomes
}

func failedOutcome(name, msg string) domain.Outcome {
	return domain.Outcome{
		Passed:      false,
		Description: fmt.Sprintf("%s failed: %s", name, msg),
	}
}
