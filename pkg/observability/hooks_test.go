package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Walk hooks
	w := NoopWalkHooks{}
	w.OnWalkStart(ctx, "Newtonsoft.Json", 3)
	w.OnResolve(ctx, "Newtonsoft.Json", 0, 2, time.Second, nil)
	w.OnWalkComplete(ctx, "Newtonsoft.Json", 12, 1, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "http")
	c.OnCacheMiss(ctx, "http")
	c.OnCacheSet(ctx, "http", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.nuget.org", "/v3/index.json")
	h.OnResponse(ctx, "GET", "api.nuget.org", "/v3/index.json", 200, time.Second)
	h.OnError(ctx, "GET", "api.nuget.org", "/v3/index.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Walk().(NoopWalkHooks); !ok {
		t.Error("Walk() should return NoopWalkHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customWalk := &testWalkHooks{}
	SetWalkHooks(customWalk)
	if Walk() != customWalk {
		t.Error("SetWalkHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Walk().(NoopWalkHooks); !ok {
		t.Error("Reset() should restore NoopWalkHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testWalkHooks{}
	SetWalkHooks(custom)

	SetWalkHooks(nil)

	if Walk() != custom {
		t.Error("SetWalkHooks(nil) should be ignored")
	}

	Reset()
}

type testWalkHooks struct{ NoopWalkHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
