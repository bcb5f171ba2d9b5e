package memory

import (
	"context"
	"testing"
)

func TestStorage_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	if _, ok, _ := s.Get(ctx, "role"); ok {
		t.Fatalf("expected empty storage")
	}
	if err := s.Set(ctx, "role", "CLIENT"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "role")
	if err != nil || !ok || v != "CLIENT" {
		t.Fatalf("unexpected get result: %q %v %v", v, ok, err)
	}
	if err := s.Delete(ctx, "role", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "role"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestStorageFactory_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	f := NewStorageFactory()

	a, b := f.For("a"), f.For("b")
	_ = a.Set(ctx, "clienttoken", "token-a")

	if _, ok, _ := b.Get(ctx, "clienttoken"); ok {
		t.Fatalf("scope b must not see scope a's keys")
	}
	if got := f.Snapshot("a")["clienttoken"]; got != "token-a" {
		t.Fatalf("unexpected snapshot value %q", got)
	}
	if v, ok, _ := f.For("a").Get(ctx, "clienttoken"); !ok || v != "token-a" {
		t.Fatalf("a fresh handle on scope a must see its keys")
	}
}
