package deskpet

import (
	"fmt"
	"slices"
	"sync"
	"testing"
)

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	if r.Has(IdleClip) {
		t.Fatal("new registry should be empty")
	}
	r.Register(clipOf(IdleClip, 2))
	r.Register(clipOf(IdleClip, 5))

	c, ok := r.Lookup(IdleClip)
	if !ok {
		t.Fatal("idle not found")
	}
	if len(c.Frames) != 5 {
		t.Errorf("frames = %d, want the replacement's 5", len(c.Frames))
	}
	if got := r.Names(); !slices.Equal(got, []string{IdleClip}) {
		t.Errorf("Names = %v", got)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := registryWith(clipOf("rise", 1), clipOf("down", 1), clipOf("idle", 1))
	want := []string{"down", "idle", "rise"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("clip%d", i)
			r.Register(clipOf(name, 1))
			_, _ = r.Lookup(name)
			_ = r.Names()
		}()
	}
	wg.Wait()
	if n := len(r.Names()); n != 8 {
		t.Errorf("registered %d clips, want 8", n)
	}
}
