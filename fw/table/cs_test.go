package table

import (
	"testing"
	"time"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/sched"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookup returns the Data found for interest, or nil on a miss.
func lookup(cs *ContentStore, interest *defn.Interest) *defn.Data {
	var found *defn.Data
	missed := false
	cs.Find(interest, func(d *defn.Data) { found = d }, func() { missed = true })
	if missed {
		return nil
	}
	return found
}

func TestContentStoreExactAndPrefix(t *testing.T) {
	tu.SetT(t)
	cs := NewContentStore(sched.NewManualClock(), 10)

	assert.Nil(t, lookup(cs, makeInterest("/a/b", 1)))

	d := makeData("/a/b/c")
	cs.Insert(d, false)
	assert.Equal(t, 1, cs.Size())

	assert.Nil(t, lookup(cs, makeInterest("/a/b", 1)))
	assert.Same(t, d, lookup(cs, makeInterest("/a/b/c", 1)))

	prefix := makeInterest("/a", 2)
	prefix.CanBePrefix = true
	assert.Same(t, d, lookup(cs, prefix))
}

func TestContentStoreFreshness(t *testing.T) {
	tu.SetT(t)
	clock := sched.NewManualClock()
	cs := NewContentStore(clock, 10)

	d := makeData("/a")
	d.FreshnessPeriod = time.Second
	cs.Insert(d, false)

	fresh := makeInterest("/a", 1)
	fresh.MustBeFresh = true
	assert.Same(t, d, lookup(cs, fresh))

	clock.Advance(time.Second)
	assert.Nil(t, lookup(cs, fresh))
	assert.Same(t, d, lookup(cs, makeInterest("/a", 2)))
}

func TestContentStoreLRU(t *testing.T) {
	tu.SetT(t)
	cs := NewContentStore(sched.NewManualClock(), 2)

	cs.Insert(makeData("/a"), false)
	cs.Insert(makeData("/b"), false)
	// touch /a so /b is the least recently used
	require.NotNil(t, lookup(cs, makeInterest("/a", 1)))
	cs.Insert(makeData("/c"), false)

	assert.Equal(t, 2, cs.Size())
	assert.NotNil(t, lookup(cs, makeInterest("/a", 1)))
	assert.Nil(t, lookup(cs, makeInterest("/b", 1)))
	assert.NotNil(t, lookup(cs, makeInterest("/c", 1)))
}

func TestContentStoreUnsolicitedEvictedFirst(t *testing.T) {
	tu.SetT(t)
	cs := NewContentStore(sched.NewManualClock(), 2)

	cs.Insert(makeData("/a"), false)
	cs.Insert(makeData("/u"), true)
	cs.Insert(makeData("/b"), false)

	assert.Nil(t, lookup(cs, makeInterest("/u", 1)))
	assert.NotNil(t, lookup(cs, makeInterest("/a", 1)))
	assert.NotNil(t, lookup(cs, makeInterest("/b", 1)))

	// a solicited entry is never downgraded by an unsolicited refresh
	cs.Insert(makeData("/a"), true)
	cs.Find(makeInterest("/a", 1), func(*defn.Data) {}, func() { t.Fatal("expected hit") })
	node := cs.root.exact(tu.Name("/a"))
	require.NotNil(t, node)
	assert.False(t, node.value.IsUnsolicited())
}

func TestContentStoreAdmitServeErase(t *testing.T) {
	tu.SetT(t)
	cs := NewContentStore(sched.NewManualClock(), 10)

	cs.SetAdmit(false)
	cs.Insert(makeData("/a"), false)
	assert.Equal(t, 0, cs.Size())
	cs.SetAdmit(true)

	cs.Insert(makeData("/a/1"), false)
	cs.Insert(makeData("/a/2"), false)
	cs.Insert(makeData("/b"), false)

	cs.SetServe(false)
	assert.Nil(t, lookup(cs, makeInterest("/b", 1)))
	cs.SetServe(true)

	assert.Equal(t, 1, cs.Erase(tu.Name("/a"), 1))
	assert.Equal(t, 1, cs.Erase(tu.Name("/a"), -1))
	assert.Equal(t, 1, cs.Size())

	cs.SetCapacity(0)
	assert.Equal(t, 0, cs.Size())
}
