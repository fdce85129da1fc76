package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	q := NoopQueryHooks{}
	q.OnQueryStart(ctx, "A", "I")
	q.OnQueryComplete(ctx, "A", "I", QueryStats{Hops: 4, Rounds: 5, Found: true, Duration: time.Millisecond}, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "route")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	w := NoopWebHooks{}
	w.OnEdgeRemoved(ctx, "E", "H", true)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Query().(NoopQueryHooks); !ok {
		t.Error("Query() should return NoopQueryHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Web().(NoopWebHooks); !ok {
		t.Error("Web() should return NoopWebHooks by default")
	}

	customQuery := &testQueryHooks{}
	SetQueryHooks(customQuery)
	if Query() != customQuery {
		t.Error("SetQueryHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customWeb := &testWebHooks{}
	SetWebHooks(customWeb)
	if Web() != customWeb {
		t.Error("SetWebHooks should set custom hooks")
	}

	Reset()
	if _, ok := Query().(NoopQueryHooks); !ok {
		t.Error("Reset() should restore NoopQueryHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testQueryHooks{}
	SetQueryHooks(custom)
	SetQueryHooks(nil)

	if Query() != custom {
		t.Error("SetQueryHooks(nil) should be ignored")
	}

	Reset()
}

type testQueryHooks struct{ NoopQueryHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testWebHooks struct{ NoopWebHooks }
