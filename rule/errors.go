package rule

// DidNotApply marks the closed set of rule-level non-application
// errors (spec.md §7): NoTargetsFoundError, NoTargetsValidatedError
// and RuleRandomlySkippedError. Block.Run catches any error satisfying
// this interface and treats the rule as a no-op, mirroring how the
// teacher distinguishes a control-flow value (nfa.ErrNoMatch) from a
// fatal, wrapped error (*nfa.CompileError).
type DidNotApply interface {
	error
	DidNotApply()
}

// notAppliedError is the shared representation of the three sentinel
// non-application conditions; each gets its own named type so
// errors.As can distinguish them when a caller cares which one fired,
// while all three satisfy DidNotApply identically.
type notAppliedError struct{ msg string }

func (e *notAppliedError) Error() string { return e.msg }

// NoTargetsFoundError reports that a rule's targets matched nowhere in
// the word (spec.md §4.6 Phase 1).
type NoTargetsFoundError struct{ notAppliedError }

func (*NoTargetsFoundError) DidNotApply() {}

// NoTargetsValidatedError reports that every candidate target was
// dropped to overlap or to no predicate accepting it (spec.md §4.6
// Phase 3).
type NoTargetsValidatedError struct{ notAppliedError }

func (*NoTargetsValidatedError) DidNotApply() {}

// RuleRandomlySkippedError reports that the rule's chance flag rolled
// against application this time (spec.md §4.6).
type RuleRandomlySkippedError struct{ notAppliedError }

func (*RuleRandomlySkippedError) DidNotApply() {}

// ErrNoTargetsFound is returned by Rule.Apply's target-finding phase.
var ErrNoTargetsFound = &NoTargetsFoundError{notAppliedError{"rule: no targets found"}}

// ErrNoTargetsValidated is returned by Rule.Apply's validation phase.
var ErrNoTargetsValidated = &NoTargetsValidatedError{notAppliedError{"rule: no targets validated"}}

// ErrRuleRandomlySkipped is returned when the chance flag skips this
// application.
var ErrRuleRandomlySkipped = &RuleRandomlySkippedError{notAppliedError{"rule: randomly skipped by chance flag"}}
