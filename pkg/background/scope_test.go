package background

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func producer(id string, data chan<- int) func(ctx context.Context) {
	return func(ctx context.Context) {
		for i := 0; ; i++ {
			select {
			case data <- i:
			case <-ctx.Done():
				fmt.Println(id, "done")
				return
			}
		}
	}
}

func ExampleScope() {
	data := make(chan int)
	write := NewScope(context.Background())
	idle := NewScope(context.Background())

	write.Go(producer("*PRODUCER*", data)) // blocked due to no consumer

	time.Sleep(20 * time.Millisecond)

	idle.Cancel()
	fmt.Println(idle.Wait(time.Second))
	write.Cancel()
	fmt.Println(write.Wait(time.Second))

	// Output:
	// true
	// *PRODUCER* done
	// true
}

func ExampleScope_expiredOrActive() {
	scope1 := NewScope(context.Background())
	defer scope1.Cancel()
	scope2 := NewScope(context.Background())
	scope2.Cancel()
	// expired condition is: err != nil, if false than scope is in active state
	fmt.Println(scope1.Context().Err() != nil, scope2.Context().Err() != nil)
	fmt.Println(scope2.Go(func(context.Context) {}))

	// Output:
	// false true
	// false
}

func TestScope_WaitTimeout(test *testing.T) {
	s := NewScope(context.Background())
	release := make(chan struct{})
	require.True(test, s.Go(func(context.Context) { <-release }))

	assert.False(test, s.Wait(10*time.Millisecond), "task is still running")
	close(release)
	assert.True(test, s.Wait(time.Second))
}

func TestScope_CancelPropagates(test *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewScope(parent)
	stopped := int32(0)
	for i := 0; i < 5; i++ {
		s.Go(func(ctx context.Context) {
			<-ctx.Done()
			atomic.AddInt32(&stopped, 1)
		})
	}
	cancel()
	require.True(test, s.Wait(time.Second))
	assert.EqualValues(test, 5, atomic.LoadInt32(&stopped))
	assert.False(test, s.Go(func(context.Context) {}), "scope must refuse tasks after parent is done")
}
