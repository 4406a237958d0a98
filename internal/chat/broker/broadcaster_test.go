package broker

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// receiverTest - reads lines from client side of the link until it is closed
func receiverTest(wg *sync.WaitGroup, conn net.Conn, received *[]string) {
	defer wg.Done()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		*received = append(*received, scanner.Text())
	}
}

func TestBroadcaster_Send(test *testing.T) {
	r, _ := NewRegistry(4)
	b := NewBroadcaster(r)
	network := []link{connect(), connect(), connect()}
	members := make([]*Member, len(network))
	received := make([][]string, len(network))
	wg := &sync.WaitGroup{}
	for i, l := range network {
		members[i] = newTestMember(test, l.brokerConn)
		members[i].Open()
		require.True(test, r.Add(members[i]))
		wg.Add(1)
		go receiverTest(wg, l.clientConn, &received[i])
	}

	delivered, dropped := b.Send("from first\n", members[0])
	assert.Equal(test, 2, delivered)
	assert.Zero(test, dropped)
	delivered, _ = b.Send("from server\n", nil)
	assert.Equal(test, 3, delivered)
	delivered, _ = b.Send("", nil)
	assert.Zero(test, delivered)

	for _, m := range members {
		r.Remove(m)
		m.Close()
	}
	wg.Wait()

	assert.Equal(test, []string{"from server"}, received[0])
	assert.Equal(test, []string{"from first", "from server"}, received[1])
	assert.Equal(test, []string{"from first", "from server"}, received[2])
}

func TestBroadcaster_SlowMember(test *testing.T) {
	r, _ := NewRegistry(2)
	b := NewBroadcaster(r)
	slow, fast := connect(), connect()
	defer slow.clientConn.Close()

	stalled := newTestMember(test, slow.brokerConn, WithQueueSize(1))
	stalled.Open()
	live := newTestMember(test, fast.brokerConn)
	live.Open()
	r.Add(stalled)
	r.Add(live)

	reader := bufio.NewReader(fast.clientConn)
	for i := 0; i < 5; i++ {
		done := make(chan struct{})
		go func() {
			b.Send("tick\n", nil)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			test.Fatal("broadcast is blocked by slow member")
		}
		line, err := reader.ReadString('\n')
		require.NoError(test, err)
		assert.Equal(test, "tick\n", line)
	}
	assert.NotZero(test, stalled.Dropped())

	r.Remove(live)
	live.Close()
	r.Remove(stalled)
	stalled.Close()
}

func TestBroadcaster_RemovedMember(test *testing.T) {
	r, _ := NewRegistry(2)
	b := NewBroadcaster(r)
	gone, stay := connect(), connect()
	left := newTestMember(test, gone.brokerConn)
	left.Open()
	kept := newTestMember(test, stay.brokerConn)
	kept.Open()
	r.Add(left)
	r.Add(kept)

	// abrupt close by peer, then the handler deregisters the member
	gone.clientConn.Close()
	r.Remove(left)
	left.Close()
	<-left.Done()

	delivered, dropped := b.Send("still here\n", nil)
	assert.Equal(test, 1, delivered)
	assert.Zero(test, dropped)
	line, err := bufio.NewReader(stay.clientConn).ReadString('\n')
	require.NoError(test, err)
	assert.Equal(test, "still here\n", line)

	r.Remove(kept)
	kept.Close()
}
