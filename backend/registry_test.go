package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/vg"
)

type nopTarget struct{}

func (nopTarget) Context() vg.RenderContext { return nil }
func (nopTarget) Close() error              { return nil }

func nopFactory(opts Options) (Target, error) {
	return nopTarget{}, nil
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, nopFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("nil Available func should mean always available")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, nopFactory, nil)
	r.Unregister("temp")
	if _, ok := r.Get("temp"); ok {
		t.Error("backend still present after unregister")
	}
}

func TestRegistryListSortedByPriority(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, nopFactory, nil)
	r.Register("high", 100, nopFactory, nil)
	r.Register("mid", 50, nopFactory, nil)

	list := r.List()
	want := []string{"high", "mid", "low"}
	if len(list) != len(want) {
		t.Fatalf("List() = %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, list[i], want[i])
		}
	}
}

func TestRegistryAvailableFilters(t *testing.T) {
	r := NewRegistry()
	r.Register("on", 10, nopFactory, nil)
	r.Register("off", 100, nopFactory, func() bool { return false })

	avail := r.Available()
	if len(avail) != 1 || avail[0] != "on" {
		t.Errorf("Available() = %v, want [on]", avail)
	}
}

func TestNewPicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	var picked string
	factory := func(name string) Factory {
		return func(opts Options) (Target, error) {
			picked = name
			return nopTarget{}, nil
		}
	}
	r.Register("slow", 10, factory("slow"), nil)
	r.Register("fast", 100, factory("fast"), nil)

	if _, err := r.New(Options{Width: 10, Height: 10}); err != nil {
		t.Fatalf("New() = %v", err)
	}
	if picked != "fast" {
		t.Errorf("picked %s, want fast", picked)
	}
}

func TestNewFallsThroughOnFactoryError(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", 100, func(opts Options) (Target, error) {
		return nil, errors.New("boom")
	}, nil)
	r.Register("working", 10, nopFactory, nil)

	if _, err := r.New(Options{}); err != nil {
		t.Errorf("New() = %v, want fallthrough to working backend", err)
	}
}

func TestNewEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	if _, err := r.New(Options{}); !errors.Is(err, ErrNoneAvailable) {
		t.Errorf("New() = %v, want ErrNoneAvailable", err)
	}
}

func TestNewByNameNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.NewByName("missing", Options{})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("NewByName() = %v, want NotFoundError", err)
	}
}

func TestNewByNameUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 10, nopFactory, func() bool { return false })
	_, err := r.NewByName("off", Options{})
	var ua *UnavailableError
	if !errors.As(err, &ua) || ua.Name != "off" {
		t.Errorf("NewByName() = %v, want UnavailableError", err)
	}
}
