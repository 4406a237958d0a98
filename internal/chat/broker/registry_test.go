package broker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdleMembers(test *testing.T, n int) []*Member {
	members := make([]*Member, n)
	for i := range members {
		l := connect()
		test.Cleanup(func() { l.clientConn.Close() })
		members[i] = newTestMember(test, l.brokerConn)
	}
	return members
}

func TestNewRegistry(test *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewRegistry(capacity)
		assert.Error(test, err, capacity)
	}
	r, err := NewRegistry(3)
	require.NoError(test, err)
	assert.Equal(test, 3, r.Cap())
	assert.Zero(test, r.Len())
}

func TestRegistry_Capacity(test *testing.T) {
	r, _ := NewRegistry(2)
	members := newIdleMembers(test, 3)

	assert.True(test, r.Add(members[0]))
	assert.False(test, r.Add(members[0]), "duplicate add")
	assert.True(test, r.Add(members[1]))
	assert.False(test, r.Add(members[2]), "over capacity")
	assert.False(test, r.Add(nil))
	assert.Equal(test, 2, r.Len())
	assert.Equal(test, members[:2], r.Snapshot())

	// removing member which was never added changes nothing
	r.Remove(members[2])
	assert.Equal(test, 2, r.Len())

	r.Remove(members[0])
	r.Remove(members[0])
	assert.Equal(test, []*Member{members[1]}, r.Snapshot())
	assert.True(test, r.Add(members[2]))
	assert.Equal(test, []*Member{members[1], members[2]}, r.Snapshot())
}

func TestRegistry_ConcurrentMembership(test *testing.T) {
	const capacity = 8
	r, _ := NewRegistry(capacity)
	members := newIdleMembers(test, 32)

	wg := sync.WaitGroup{}
	added := make([]bool, len(members))
	for i, m := range members {
		wg.Add(1)
		go func(i int, m *Member) {
			defer wg.Done()
			added[i] = r.Add(m)
			r.Each(func(*Member) {})
			assert.LessOrEqual(test, r.Len(), capacity)
		}(i, m)
	}
	wg.Wait()

	succeeded := 0
	for _, ok := range added {
		if ok {
			succeeded++
		}
	}
	assert.Equal(test, capacity, succeeded)
	assert.Equal(test, capacity, r.Len())

	for _, m := range members {
		wg.Add(1)
		go func(m *Member) {
			defer wg.Done()
			r.Remove(m)
			r.Remove(m)
		}(m)
	}
	wg.Wait()
	assert.Zero(test, r.Len())
}
