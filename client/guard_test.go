package client

import (
	"context"
	"sync"
	"testing"
)

func TestPostGuardDropsConcurrentRuns(t *testing.T) {
	var g PostGuard
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	submit := func(context.Context) error {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return nil
	}

	done := make(chan bool, 1)
	go func() {
		ran, _ := g.Do(context.Background(), submit)
		done <- ran
	}()
	<-started

	if !g.Busy() {
		t.Fatal("Busy = false during run")
	}
	ran, err := g.Do(context.Background(), submit)
	if err != nil {
		t.Fatal(err)
	}
	if ran {
		t.Fatal("second Do ran while first was in flight")
	}

	close(release)
	if !<-done {
		t.Fatal("first Do reported ran = false")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestPostGuardRunsAgainAfterFinish(t *testing.T) {
	var g PostGuard
	calls := 0
	fn := func(context.Context) error { calls++; return nil }

	for i := 0; i < 3; i++ {
		ran, err := g.Do(context.Background(), fn)
		if err != nil {
			t.Fatal(err)
		}
		if !ran {
			t.Fatalf("sequential Do %d did not run", i)
		}
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if g.Busy() {
		t.Fatal("Busy = true after all runs finished")
	}
}
