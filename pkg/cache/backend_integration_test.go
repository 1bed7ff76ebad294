//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// exerciseBackend runs the shared Cache contract against a live backend.
func exerciseBackend(t *testing.T, c interface {
	Cache
	Clearer
}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	for _, k := range []string{"a", "b"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if n, err := c.Clear(ctx); err != nil || n != 2 {
		t.Errorf("Clear = %d, %v; want 2", n, err)
	}
}

func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("HYPERCUBOID_TEST_REDIS_URL")
	if url == "" {
		t.Skip("HYPERCUBOID_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{URL: url, KeyPrefix: "hypercuboid-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache_Integration(t *testing.T) {
	uri := os.Getenv("HYPERCUBOID_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("HYPERCUBOID_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), MongoConfig{URI: uri, Database: "hypercuboid_test"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
