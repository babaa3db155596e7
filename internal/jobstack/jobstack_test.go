package jobstack

import (
	"sync"
	"testing"
)

func TestPopEmpty(t *testing.T) {
	s := New[int]()
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack returned ok=true")
	}
}

func TestPushPop(t *testing.T) {
	s := New[int]()
	s.Push(1)
	s.Push(2)
	v, ok := s.Pop()
	if !ok || v != 2 {
		t.Fatalf("got (%v, %v), want (2, true)", v, ok)
	}
	s.JobDone()
	v, ok = s.Pop()
	if !ok || v != 1 {
		t.Fatalf("got (%v, %v), want (1, true)", v, ok)
	}
	s.JobDone()
	if _, ok := s.Pop(); ok {
		t.Error("Pop after all jobs done returned ok=true")
	}
}

func TestShutdownWakesWaiters(t *testing.T) {
	s := New[int]()
	s.Extend(0) // keep jobs > 0 so Pop blocks
	var wg sync.WaitGroup
	wg.Add(1)
	results := make(chan bool, 1)
	popped := make(chan struct{})
	go func() {
		defer wg.Done()
		s.Pop() // takes the seed job and keeps it in flight (no JobDone)
		close(popped)
		_, ok := s.Pop() // jobs is still 1, so this blocks until Shutdown
		results <- ok
	}()
	<-popped
	s.Shutdown()
	wg.Wait()
	if ok := <-results; ok {
		t.Error("Pop after Shutdown returned ok=true")
	}
}

func TestDrainFanOut(t *testing.T) {
	s := New[int](3)
	var mu sync.Mutex
	var seen []int
	handle := func(n int) ([]int, error) {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
		if n <= 0 {
			return nil, nil
		}
		return []int{n - 1}, nil
	}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Drain(handle); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if len(seen) != 4 {
		t.Errorf("got %d jobs processed, want 4", len(seen))
	}
}

func TestDrainErrorShutsDown(t *testing.T) {
	s := New[int](1, 2, 3)
	boom := errTest("boom")
	handle := func(n int) ([]int, error) {
		if n == 2 {
			return nil, boom
		}
		return nil, nil
	}
	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Drain(handle)
		}()
	}
	wg.Wait()
	close(errs)
	var gotErr bool
	for err := range errs {
		if err == boom {
			gotErr = true
		} else if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if !gotErr {
		t.Error("no goroutine observed the error")
	}
	if !s.IsShutdown() {
		t.Error("stack not shut down after error")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
