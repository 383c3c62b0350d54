package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	type payload struct {
		Name  string
		Price float64
	}
	if err := c.Set(ctx, "quote:TEST", payload{Name: "Test Corp", Price: 123.45}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := c.Get(ctx, "quote:TEST", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Test Corp" || got.Price != 123.45 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestMemory_MissOnAbsentKey(t *testing.T) {
	c := NewMemory()
	var out int
	if err := c.Get(context.Background(), "nope", &out); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	if err := c.Set(ctx, "k", 1, time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)
	var out int
	if err := c.Get(ctx, "k", &out); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
}
