package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheServiceFromClient(client, zap.NewNop()), server
}

func TestMarkOnceClaimsExactlyOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	claimed, err := svc.MarkOnce(ctx, "report:sent:42", time.Hour)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if !claimed {
		t.Fatalf("first caller must win the claim")
	}

	claimed, err = svc.MarkOnce(ctx, "report:sent:42", time.Hour)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claimed {
		t.Fatalf("second caller must not claim an already-marked key")
	}
}

func TestMarkOnceExpires(t *testing.T) {
	svc, server := newTestService(t)
	ctx := context.Background()

	if _, err := svc.MarkOnce(ctx, "report:sent:7", time.Minute); err != nil {
		t.Fatalf("claim: %v", err)
	}

	server.FastForward(2 * time.Minute)

	claimed, err := svc.MarkOnce(ctx, "report:sent:7", time.Minute)
	if err != nil {
		t.Fatalf("claim after expiry: %v", err)
	}
	if !claimed {
		t.Fatalf("an expired marker must be claimable again")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	if err := svc.Set(ctx, "candidate:1", payload{Name: "Jane Doe", Score: 82}, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := svc.Get(ctx, "candidate:1", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Jane Doe" || got.Score != 82 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t)

	var got map[string]any
	if err := svc.Get(context.Background(), "nope", &got); err != nil {
		t.Fatalf("missing key must not error, got %v", err)
	}
	if got != nil {
		t.Fatalf("missing key must leave dest untouched")
	}
}

func TestDel(t *testing.T) {
	svc, server := newTestService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, "gone", "value", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Del(ctx, "gone"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if server.Exists("gone") {
		t.Fatalf("key must be deleted")
	}
}
