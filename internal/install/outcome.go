// Package install orchestrates a package install from external storage:
// mount, browse, spawn the virtual-file host, bound the readiness wait,
// invoke the installer, and tear everything down.
package install

// Outcome is the result of an install attempt, as reported by the external
// installer or synthesized by the orchestrator.
type Outcome int

const (
	// OutcomeSuccess means the package installed.
	OutcomeSuccess Outcome = iota
	// OutcomeError means the attempt failed (mount, spawn, timeout, crash,
	// or installer failure).
	OutcomeError
	// OutcomeNone means nothing was installed (cancelled or navigated away).
	OutcomeNone
	// OutcomeUnverifiedPackage means signature verification failed; the
	// install may be retried with verification disabled.
	OutcomeUnverifiedPackage
	// OutcomeDowngradeBlocked means the package is a version downgrade; the
	// install may be retried with downgrades allowed.
	OutcomeDowngradeBlocked
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeNone:
		return "none"
	case OutcomeUnverifiedPackage:
		return "unverified package"
	case OutcomeDowngradeBlocked:
		return "downgrade blocked"
	}
	return "unknown"
}
