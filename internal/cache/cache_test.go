package cache

import (
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	defer c.Stop()

	c.Set("roster", []string{"Ana", "Bruno"})

	value, found := c.Get("roster")
	if !found {
		t.Error("Expected to find roster")
	}
	if names, ok := value.([]string); !ok || len(names) != 2 {
		t.Errorf("Expected 2 names, got %v", value)
	}

	_, found = c.Get("nonexistent")
	if found {
		t.Error("Expected not to find nonexistent key")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	defer c.Stop()

	c.SetWithTTL("expiring", "value", 100*time.Millisecond)

	if _, found := c.Get("expiring"); !found {
		t.Error("Expected to find item before expiration")
	}

	time.Sleep(150 * time.Millisecond)

	if _, found := c.Get("expiring"); found {
		t.Error("Expected item to be expired")
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	defer c.Stop()

	c.Set("key1", "value1")
	c.Delete("key1")

	if _, found := c.Get("key1"); found {
		t.Error("Expected key to be deleted")
	}
}

func TestCacheCount(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	defer c.Stop()

	c.Set("key1", "value1")
	c.Set("key2", "value2")

	if c.Count() != 2 {
		t.Errorf("Expected count 2, got %d", c.Count())
	}
}
