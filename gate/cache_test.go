package gate_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberworld-builders/involved-v2-sub003/gate"
)

func TestCachedResolverCaches(t *testing.T) {
	inner := gate.NewStaticResolver[uuid.UUID]()
	subject := uuid.New()
	inner.Set(subject, gate.NewStaticProfile("member"))

	cached := gate.NewCachedResolver[uuid.UUID](inner, 5*time.Minute)

	p, err := cached.Resolve(context.Background(), subject)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name() != "member" {
		t.Fatalf("Name() = %q, want member", p.Name())
	}

	// The inner resolver changes; the cache keeps serving the old profile.
	inner.Set(subject, gate.NewStaticProfile("admin"))
	p, err = cached.Resolve(context.Background(), subject)
	if err != nil {
		t.Fatalf("resolve cached: %v", err)
	}
	if p.Name() != "member" {
		t.Errorf("cache did not hold: got %q", p.Name())
	}
}

func TestCachedResolverInvalidate(t *testing.T) {
	inner := gate.NewStaticResolver[uuid.UUID]()
	subject := uuid.New()
	inner.Set(subject, gate.NewStaticProfile("member"))

	cached := gate.NewCachedResolver[uuid.UUID](inner, 5*time.Minute)
	if _, err := cached.Resolve(context.Background(), subject); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	inner.Set(subject, gate.NewStaticProfile("admin"))
	cached.Invalidate(subject)

	p, err := cached.Resolve(context.Background(), subject)
	if err != nil {
		t.Fatalf("resolve after invalidate: %v", err)
	}
	if p.Name() != "admin" {
		t.Errorf("invalidate did not refresh: got %q", p.Name())
	}
}

func TestCachedResolverInvalidateAll(t *testing.T) {
	inner := gate.NewStaticResolver[uuid.UUID]()
	first := uuid.New()
	second := uuid.New()
	inner.Set(first, gate.NewStaticProfile("one"))
	inner.Set(second, gate.NewStaticProfile("two"))

	cached := gate.NewCachedResolver[uuid.UUID](inner, 5*time.Minute)
	_, _ = cached.Resolve(context.Background(), first)
	_, _ = cached.Resolve(context.Background(), second)

	inner.Set(first, gate.NewStaticProfile("one-b"))
	inner.Set(second, gate.NewStaticProfile("two-b"))
	cached.InvalidateAll()

	p1, _ := cached.Resolve(context.Background(), first)
	p2, _ := cached.Resolve(context.Background(), second)
	if p1.Name() != "one-b" || p2.Name() != "two-b" {
		t.Errorf("InvalidateAll did not refresh: %q, %q", p1.Name(), p2.Name())
	}
}

func TestCachedResolverExpiry(t *testing.T) {
	inner := gate.NewStaticResolver[uuid.UUID]()
	subject := uuid.New()
	inner.Set(subject, gate.NewStaticProfile("member"))

	cached := gate.NewCachedResolver[uuid.UUID](inner, 20*time.Millisecond)
	if _, err := cached.Resolve(context.Background(), subject); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	inner.Set(subject, gate.NewStaticProfile("admin"))
	time.Sleep(30 * time.Millisecond)

	p, err := cached.Resolve(context.Background(), subject)
	if err != nil {
		t.Fatalf("resolve after expiry: %v", err)
	}
	if p.Name() != "admin" {
		t.Errorf("expired entry still served: got %q", p.Name())
	}
}
