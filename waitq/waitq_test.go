package waitq_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/connectivecpp/utility-rack/waitq"
)

func TestFIFOOrder(t *testing.T) {
	wq := waitq.New[int]()
	for i := 0; i < 100; i++ {
		require.True(t, wq.Push(i))
	}
	require.Equal(t, 100, wq.Len())
	for i := 0; i < 100; i++ {
		v, ok := wq.TryPop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.True(t, wq.Empty())
}

func TestTryPopEmpty(t *testing.T) {
	wq := waitq.New[string]()
	_, ok := wq.TryPop()
	require.False(t, ok)

	// state has no bearing on TryPop emptiness
	wq.Close()
	_, ok = wq.TryPop()
	require.False(t, ok)
}

func TestPushAfterClose(t *testing.T) {
	wq := waitq.New[int]()
	require.True(t, wq.Push(1))
	wq.Close()
	require.True(t, wq.IsClosed())

	require.False(t, wq.Push(2))
	require.Equal(t, 1, wq.Len())

	v, ok := wq.TryPop()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestCloseIdempotent(t *testing.T) {
	wq := waitq.New[int]()
	wq.Close()
	wq.Close()
	require.True(t, wq.IsClosed())
}

func TestReopen(t *testing.T) {
	wq := waitq.New[int]()
	wq.Close()
	require.False(t, wq.Push(1))

	wq.Open()
	require.False(t, wq.IsClosed())
	require.True(t, wq.Push(2))

	v, ok := wq.TryPop()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestWaitPopDeliversThenClosed(t *testing.T) {
	wq := waitq.New[int]()
	wq.Push(7)
	wq.Push(8)
	wq.Close()

	// elements pushed before the close are still delivered
	v, ok := wq.WaitPop()
	require.True(t, ok)
	require.Equal(t, 7, v)
	v, ok = wq.WaitPop()
	require.True(t, ok)
	require.Equal(t, 8, v)

	// closed and drained: empty result without blocking
	_, ok = wq.WaitPop()
	require.False(t, ok)
}

func TestWaitPopBlocksUntilPush(t *testing.T) {
	wq := waitq.New[int]()
	got := make(chan int)
	go func() {
		v, ok := wq.WaitPop()
		require.True(t, ok)
		got <- v
	}()

	time.Sleep(10 * time.Millisecond)
	require.True(t, wq.Push(42))

	select {
	case v := <-got:
		require.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("WaitPop did not receive pushed value")
	}
}

func TestWakeOnClose(t *testing.T) {
	wq := waitq.New[int]()

	const waiters = 5
	woken := make(chan bool, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			_, ok := wq.WaitPop()
			woken <- ok
		}()
	}

	time.Sleep(10 * time.Millisecond) // let the readers block
	wq.Close()

	for i := 0; i < waiters; i++ {
		select {
		case ok := <-woken:
			require.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("WaitPop did not wake after Close")
		}
	}
}

func TestPushFuncClosedDoesNotConstruct(t *testing.T) {
	wq := waitq.New[int]()

	constructed := false
	require.True(t, wq.PushFunc(func() int {
		constructed = true
		return 1
	}))
	require.True(t, constructed)

	wq.Close()
	constructed = false
	require.False(t, wq.PushFunc(func() int {
		constructed = true
		return 2
	}))
	require.False(t, constructed)
	require.Equal(t, 1, wq.Len())
}

func TestApply(t *testing.T) {
	wq := waitq.New[int]()
	want := []int{3, 1, 4, 1, 5}
	for _, v := range want {
		wq.Push(v)
	}

	var got []int
	wq.Apply(func(v int) { got = append(got, v) })

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply visit order mismatch (-want +got):\n%s", diff)
	}
	// inspection only, nothing removed
	require.Equal(t, len(want), wq.Len())
}

func TestConcurrentNoLossNoDuplication(t *testing.T) {
	const writers, readers, perWriter = 4, 4, 1000

	wq := waitq.New[int]()

	var mu sync.Mutex
	got := make(map[int]int)

	var consWG sync.WaitGroup
	for r := 0; r < readers; r++ {
		consWG.Add(1)
		go func() {
			defer consWG.Done()
			for {
				v, ok := wq.WaitPop()
				if !ok {
					return
				}
				mu.Lock()
				got[v]++
				mu.Unlock()
			}
		}()
	}

	var prodWG sync.WaitGroup
	for w := 0; w < writers; w++ {
		prodWG.Add(1)
		go func(w int) {
			defer prodWG.Done()
			// disjoint, uniquely tagged range per writer
			for i := 0; i < perWriter; i++ {
				require.True(t, wq.Push(w*perWriter+i))
			}
		}(w)
	}

	prodWG.Wait()
	wq.Close()
	consWG.Wait()

	require.Len(t, got, writers*perWriter)
	for tag, count := range got {
		require.Equalf(t, 1, count, "tag %d delivered %d times", tag, count)
	}
}

func TestConcurrentPushClose(t *testing.T) {
	// a push overlapping a close either fully succeeds or fully fails
	for iter := 0; iter < 100; iter++ {
		wq := waitq.New[int]()
		var wg sync.WaitGroup
		pushed := make([]bool, 8)

		wg.Add(1)
		go func() {
			defer wg.Done()
			wq.Close()
		}()
		for p := 0; p < len(pushed); p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				pushed[p] = wq.Push(p)
			}(p)
		}
		wg.Wait()

		succeeded := 0
		for _, ok := range pushed {
			if ok {
				succeeded++
			}
		}
		require.Equal(t, succeeded, wq.Len())
	}
}
