package models

import "errors"

// Error kinds shared across components. Wrapped with fmt.Errorf("...: %w")
// at the point of failure so callers can classify with errors.Is.
var (
	// ErrProviderUnavailable marks an external API that is unreachable or
	// returned a non-2xx status. Composition degrades around it.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrParseFailure marks a malformed response from the language model or
	// a market API. For the language model it is always recovered locally.
	ErrParseFailure = errors.New("parse failure")

	// ErrQuotaExceeded is returned before any network call when the usage
	// ledger has no remaining capacity for a draft.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrPublishPartial marks a thread that stopped partway. The result still
	// carries the ids posted before the failure.
	ErrPublishPartial = errors.New("thread published partially")

	// ErrEmptyDraft marks a composition that produced no segments at all:
	// every section was degraded away.
	ErrEmptyDraft = errors.New("draft has no segments")

	// ErrRunInProgress is returned when the run lock is already held by
	// another invocation.
	ErrRunInProgress = errors.New("another run is in progress")
)
