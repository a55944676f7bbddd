// Package ledger records per-company outcomes durably so repeated runs
// never redo finished work and stop retrying dead targets.
package ledger

import (
	"strings"
)

// Reason classifies why a company attempt failed.
type Reason string

// Failure reasons persisted in the ledger snapshot.
const (
	ReasonNoWebsite     Reason = "no_website"
	ReasonNoCareerPages Reason = "no_career_pages"
	ReasonNoJobs        Reason = "no_jobs"
	ReasonError         Reason = "error"
)

// Failure records the most recent failed attempt for a company.
type Failure struct {
	Reason Reason `json:"reason"`
	// Attempts counts failing attempts across runs; it gates retries.
	Attempts int `json:"attempts"`
	// LastError holds the most recent step error, if any.
	LastError string `json:"last_error,omitempty"`
}

// Ledger maps canonical company keys to outcomes. It is owned by a single
// orchestrator; no locking discipline is required in the sequential design.
type Ledger struct {
	maxAttempts int
	succeeded   map[string]struct{}
	failed      map[string]Failure
}

// DefaultMaxAttempts caps failing attempts per company across runs.
const DefaultMaxAttempts = 3

// New builds an empty Ledger. maxAttempts <= 0 falls back to the default.
func New(maxAttempts int) *Ledger {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Ledger{
		maxAttempts: maxAttempts,
		succeeded:   make(map[string]struct{}),
		failed:      make(map[string]Failure),
	}
}

// Key canonicalizes a company name for ledger lookup: trimmed, internal
// whitespace collapsed, lower-cased. Display names are kept by callers.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// ShouldAttempt reports whether the company is still eligible for
// processing: not succeeded, and not failed at the attempt cap.
func (l *Ledger) ShouldAttempt(key string) bool {
	if _, ok := l.succeeded[key]; ok {
		return false
	}
	if f, ok := l.failed[key]; ok && f.Attempts >= l.maxAttempts {
		return false
	}
	return true
}

// RecordSuccess marks the company terminally succeeded and clears any
// prior failure record.
func (l *Ledger) RecordSuccess(key string) {
	l.succeeded[key] = struct{}{}
	delete(l.failed, key)
}

// RecordFailure increments the attempt counter and overwrites the reason
// and last error with the most recent attempt's.
func (l *Ledger) RecordFailure(key string, reason Reason, err error) {
	f := l.failed[key]
	f.Attempts++
	f.Reason = reason
	f.LastError = ""
	if err != nil {
		f.LastError = err.Error()
	}
	l.failed[key] = f
}

// Succeeded reports whether the company succeeded.
func (l *Ledger) Succeeded(key string) bool {
	_, ok := l.succeeded[key]
	return ok
}

// FailureFor returns the failure record for the company, if any.
func (l *Ledger) FailureFor(key string) (Failure, bool) {
	f, ok := l.failed[key]
	return f, ok
}

// Eligible filters names down to those ShouldAttempt allows, preserving
// input order.
func (l *Ledger) Eligible(names []string) []string {
	var out []string
	for _, name := range names {
		if l.ShouldAttempt(Key(name)) {
			out = append(out, name)
		}
	}
	return out
}

// ResetIfExhausted clears every outcome when no name in the input remains
// eligible, making the full list attemptable again. Reports whether a
// reset happened. The crawler is meant to run indefinitely on a schedule,
// so an exhausted ledger restarts the cycle rather than going idle.
func (l *Ledger) ResetIfExhausted(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if l.ShouldAttempt(Key(name)) {
			return false
		}
	}
	l.succeeded = make(map[string]struct{})
	l.failed = make(map[string]Failure)
	return true
}

// Counts returns the number of succeeded and failed entries.
func (l *Ledger) Counts() (succeeded, failed int) {
	return len(l.succeeded), len(l.failed)
}
