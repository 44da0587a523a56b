package topology

import "github.com/ensp-automation/enspgen/pkg/util"

// Phase is the reconciliation state of a topology.
type Phase int

const (
	PhaseBuilt Phase = iota
	PhaseValidated
	PhaseRepaired
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilt:
		return "built"
	case PhaseValidated:
		return "validated"
	case PhaseRepaired:
		return "repaired"
	default:
		return "unknown"
	}
}

// Reconciler drives the validate/repair flow as an explicit state
// machine: Built -> Validated -> Repaired -> Validated, with exactly
// one Repaired -> Validated transition allowed. There is no retry
// loop; whatever issues survive the single repair pass are returned.
type Reconciler struct {
	phase    Phase
	repaired bool
}

// NewReconciler returns a reconciler in the Built phase.
func NewReconciler() *Reconciler {
	return &Reconciler{phase: PhaseBuilt}
}

// Phase returns the current reconciliation phase.
func (r *Reconciler) Phase() Phase {
	return r.phase
}

// Run validates the topology, applies at most one repair pass if
// issues were found, and re-validates. The topology is mutated only
// during the repair step.
func (r *Reconciler) Run(t *Topology) (bool, []Issue) {
	valid, issues := Validate(t)
	r.phase = PhaseValidated
	if valid || r.repaired {
		return valid, issues
	}

	for _, issue := range issues {
		util.Warnf("validation: %s", issue.Message)
	}

	Repair(t, issues)
	r.phase = PhaseRepaired
	r.repaired = true

	valid, issues = Validate(t)
	r.phase = PhaseValidated
	if !valid {
		for _, issue := range issues {
			util.Warnf("unresolved after repair: %s", issue.Message)
		}
	}
	return valid, issues
}

// Reconcile is the one-shot convenience form of Reconciler.Run.
func Reconcile(t *Topology) (bool, []Issue) {
	return NewReconciler().Run(t)
}
