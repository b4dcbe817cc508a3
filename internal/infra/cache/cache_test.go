package cache_test

import (
	"testing"
	"time"

	"github.com/noisapp/voice-bfv-go/internal/infra/cache"
)

func TestCacheRoundTrip(t *testing.T) {
	c := cache.New[[]string](time.Minute)

	c.Set("restaurantes", []string{"Cantina da Nona"})

	got, ok := c.Get("restaurantes")
	if !ok {
		t.Fatal("expected hit for stored keyword")
	}
	if len(got) != 1 || got[0] != "Cantina da Nona" {
		t.Fatalf("unexpected value %v", got)
	}

	if _, ok := c.Get("bares"); ok {
		t.Fatal("expected miss for unknown keyword")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := cache.New[int](20 * time.Millisecond)

	c.Set("k", 42)
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestCacheDelete(t *testing.T) {
	c := cache.New[int](time.Minute)

	c.Set("k", 1)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry gone after delete")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := cache.New[int](time.Minute)

	c.Set("k", 1)
	c.Set("k", 2)

	got, ok := c.Get("k")
	if !ok || got != 2 {
		t.Fatalf("expected overwritten value 2, got %d (ok=%v)", got, ok)
	}
}
