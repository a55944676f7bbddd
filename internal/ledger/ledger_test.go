package ledger

import (
	"errors"
	"testing"
)

func TestKeyCanonicalizes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme corp"},
		{"  Acme   Corp  ", "acme corp"},
		{"ACME CORP", "acme corp"},
	}
	for _, tc := range cases {
		if got := Key(tc.in); got != tc.want {
			t.Fatalf("Key(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShouldAttemptGating(t *testing.T) {
	t.Parallel()

	l := New(3)
	key := Key("Acme Corp")

	if !l.ShouldAttempt(key) {
		t.Fatalf("fresh name should be attemptable")
	}

	l.RecordSuccess(key)
	if l.ShouldAttempt(key) {
		t.Fatalf("succeeded name must never be re-attempted")
	}

	other := Key("Beta Ltd")
	l.RecordFailure(other, ReasonNoWebsite, nil)
	l.RecordFailure(other, ReasonNoWebsite, nil)
	if !l.ShouldAttempt(other) {
		t.Fatalf("name below attempt cap should be attemptable")
	}
	l.RecordFailure(other, ReasonError, errors.New("boom"))
	if l.ShouldAttempt(other) {
		t.Fatalf("name at attempt cap must be excluded")
	}

	f, ok := l.FailureFor(other)
	if !ok {
		t.Fatalf("expected failure record")
	}
	if f.Attempts != 3 || f.Reason != ReasonError || f.LastError != "boom" {
		t.Fatalf("unexpected failure record %+v", f)
	}
}

func TestRecordFailureOverwritesReason(t *testing.T) {
	t.Parallel()

	l := New(3)
	key := Key("Gamma")
	l.RecordFailure(key, ReasonError, errors.New("timeout"))
	l.RecordFailure(key, ReasonNoJobs, nil)

	f, _ := l.FailureFor(key)
	if f.Reason != ReasonNoJobs {
		t.Fatalf("reason = %q, want %q", f.Reason, ReasonNoJobs)
	}
	if f.LastError != "" {
		t.Fatalf("last error should be cleared, got %q", f.LastError)
	}
	if f.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", f.Attempts)
	}
}

func TestSuccessClearsFailureRecord(t *testing.T) {
	t.Parallel()

	l := New(3)
	key := Key("Delta")
	l.RecordFailure(key, ReasonNoCareerPages, nil)
	l.RecordSuccess(key)

	if _, ok := l.FailureFor(key); ok {
		t.Fatalf("failure record should be cleared after success")
	}
	if !l.Succeeded(key) {
		t.Fatalf("expected success record")
	}
}

func TestEligiblePreservesOrder(t *testing.T) {
	t.Parallel()

	l := New(3)
	l.RecordSuccess(Key("B Corp"))
	got := l.Eligible([]string{"A Ltd", "B Corp", "C Plc"})
	if len(got) != 2 || got[0] != "A Ltd" || got[1] != "C Plc" {
		t.Fatalf("Eligible() = %v", got)
	}
}

func TestResetIfExhausted(t *testing.T) {
	t.Parallel()

	names := []string{"Acme Corp", "Beta Ltd"}
	l := New(3)
	l.RecordSuccess(Key(names[0]))
	l.RecordSuccess(Key(names[1]))

	if !l.ResetIfExhausted(names) {
		t.Fatalf("expected reset when every name is terminal")
	}
	if got := l.Eligible(names); len(got) != 2 {
		t.Fatalf("after reset all names should be eligible, got %v", got)
	}

	// One eligible name left: no reset.
	l.RecordSuccess(Key(names[0]))
	if l.ResetIfExhausted(names) {
		t.Fatalf("reset must not fire while eligible names remain")
	}
	if l.ResetIfExhausted(nil) {
		t.Fatalf("empty input never resets")
	}
}

func TestResetAlsoClearsCappedFailures(t *testing.T) {
	t.Parallel()

	names := []string{"Acme Corp"}
	l := New(1)
	l.RecordFailure(Key(names[0]), ReasonNoWebsite, nil)

	if !l.ResetIfExhausted(names) {
		t.Fatalf("capped failure should count as exhausted")
	}
	if !l.ShouldAttempt(Key(names[0])) {
		t.Fatalf("failure counter should be cleared by reset")
	}
}
