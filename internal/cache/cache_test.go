package cache

import (
	"testing"
	"time"

	"menuboard/api/internal/domain"

	"github.com/benbjohnson/clock"
)

func snapshot() *domain.MenuData {
	return domain.Group([]domain.MenuItem{
		{Section: "S", Category: "C", ItemName: "Item", Status: "Active", IsActive: true},
	})
}

func TestCacheFreshWithinWindow(t *testing.T) {
	clk := clock.NewMock()
	c := NewMenu(5*time.Minute, clk)

	data := snapshot()
	c.Set(data)

	clk.Add(4 * time.Minute)
	got, fresh := c.Get()
	if !fresh {
		t.Fatal("expected snapshot to be fresh before the window elapses")
	}
	if got != data {
		t.Fatal("expected the same snapshot pointer back")
	}
}

func TestCacheStaleAfterWindow(t *testing.T) {
	clk := clock.NewMock()
	c := NewMenu(5*time.Minute, clk)

	data := snapshot()
	c.Set(data)

	clk.Add(5 * time.Minute)
	got, fresh := c.Get()
	if fresh {
		t.Fatal("expected snapshot to be stale once the window elapses")
	}
	if got != data {
		t.Fatal("stale snapshot should still be returned for inspection")
	}
}

func TestCacheEmpty(t *testing.T) {
	c := NewMenu(5*time.Minute, clock.NewMock())

	got, fresh := c.Get()
	if got != nil || fresh {
		t.Fatalf("empty cache should miss, got %v fresh=%v", got, fresh)
	}
	if c.Age() != 0 {
		t.Fatalf("empty cache age should be 0, got %v", c.Age())
	}
}

func TestCacheInvalidate(t *testing.T) {
	clk := clock.NewMock()
	c := NewMenu(5*time.Minute, clk)

	c.Set(snapshot())
	c.Invalidate()

	got, fresh := c.Get()
	if got != nil || fresh {
		t.Fatal("invalidated cache should be empty")
	}
}

func TestCacheZeroTTLNeverFresh(t *testing.T) {
	clk := clock.NewMock()
	c := NewMenu(0, clk)

	data := snapshot()
	c.Set(data)

	got, fresh := c.Get()
	if fresh {
		t.Fatal("TTL 0 disables caching; Get must never report fresh")
	}
	if got != data {
		t.Fatal("data should still be present for stale inspection")
	}
}

func TestCacheSetRestartsWindow(t *testing.T) {
	clk := clock.NewMock()
	c := NewMenu(5*time.Minute, clk)

	c.Set(snapshot())
	clk.Add(4 * time.Minute)
	c.Set(snapshot())
	clk.Add(4 * time.Minute)

	if _, fresh := c.Get(); !fresh {
		t.Fatal("second Set should have restarted the revalidation window")
	}
	if c.Age() != 4*time.Minute {
		t.Fatalf("expected age 4m, got %v", c.Age())
	}
}
