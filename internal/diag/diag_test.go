package diag

import "testing"

func TestWarnFiresOnlyOncePerKind(t *testing.T) {
	f := NewFlags()
	if !f.Warn("bad-arg", "first") {
		t.Fatal("expected first warning to fire")
	}
	if f.Warn("bad-arg", "second") {
		t.Fatal("expected second warning of same kind to be suppressed")
	}
	if !f.Fired("bad-arg") {
		t.Fatal("expected kind to be marked fired")
	}
}

func TestWarnDistinctKindsAreIndependent(t *testing.T) {
	f := NewFlags()
	f.Warn("a", "x")
	if !f.Warn("b", "y") {
		t.Fatal("expected a different kind to fire independently")
	}
}

func TestFiredFalseForUnknownKind(t *testing.T) {
	f := NewFlags()
	if f.Fired("never-warned") {
		t.Fatal("expected unknown kind to report not fired")
	}
}

func TestInstanceTagIsDeterministic(t *testing.T) {
	a := InstanceTag("oak", 2, 1, 3)
	b := InstanceTag("oak", 2, 1, 3)
	if a != b {
		t.Fatalf("expected identical inputs to produce identical tags, got %q != %q", a, b)
	}
}

func TestInstanceTagDistinguishesVariants(t *testing.T) {
	a := InstanceTag("oak", 2, 1, 0)
	b := InstanceTag("oak", 2, 1, 1)
	if a == b {
		t.Fatal("expected distinct variants to produce distinct tags")
	}
}
