package unresolved

import "testing"

func TestPoolInternStringIdempotent(t *testing.T) {
	p := NewPool()
	a := p.InternString("System.String")
	b := p.InternString("System.String")
	if a != b {
		t.Fatalf("expected idempotent interning, got %q and %q", a, b)
	}
	if p.InternString("System.Int32") == a {
		t.Fatalf("distinct strings must not collapse to the same value")
	}
}

func TestPoolInternTypeReferenceByKey(t *testing.T) {
	p := NewPool()
	ref1 := NewNamedTypeReference("", "System.Collections.Generic", "List", 1, true, true)
	ref2 := NewNamedTypeReference("", "System.Collections.Generic", "List", 1, true, true)

	interned1 := p.InternTypeReference("List`1", ref1)
	interned2 := p.InternTypeReference("List`1", ref2)
	if interned1 != interned2 {
		t.Fatalf("expected the second Intern call to return the first value, got distinct pointers")
	}
	if interned1 != ref1 {
		t.Fatalf("first InternTypeReference call should return its own argument")
	}
}

func TestDummyPoolReturnsInputUnchanged(t *testing.T) {
	p := NewDummyPool()
	ref := NewNamedTypeReference("", "System", "Object", 0, true, true)
	if p.InternTypeReference("System.Object", ref) != ref {
		t.Fatalf("dummy pool must return its argument, not a cached substitute")
	}
	if p.InternString("x") != "x" {
		t.Fatalf("dummy pool must not rewrite strings")
	}
}

func TestAssemblyFreezePanicsOnSecondCall(t *testing.T) {
	asm := NewAssembly("Test", "/tmp/test.dll", [16]byte{}, 0)
	asm.Freeze()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a second Freeze to panic")
		}
	}()
	asm.Freeze()
}

func TestAssemblyMutationPanicsAfterFreeze(t *testing.T) {
	asm := NewAssembly("Test", "/tmp/test.dll", [16]byte{}, 0)
	asm.Freeze()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected AddType after Freeze to panic")
		}
	}()
	asm.AddType(nil)
}

func TestAccessibilityJoin(t *testing.T) {
	cases := []struct {
		a, b, want Accessibility
	}{
		{AccessibilityProtected, AccessibilityInternal, AccessibilityProtectedOrInternal},
		{AccessibilityInternal, AccessibilityProtected, AccessibilityProtectedOrInternal},
		{AccessibilityPublic, AccessibilityPrivate, AccessibilityPublic},
		{AccessibilityPrivate, AccessibilityPrivate, AccessibilityPrivate},
	}
	for _, c := range cases {
		if got := Join(c.a, c.b); got != c.want {
			t.Errorf("Join(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
