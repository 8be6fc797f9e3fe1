package table

import (
	"testing"

	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFibLongestPrefix(t *testing.T) {
	tu.SetT(t)
	fib := NewFibStrategyTree(tu.Name("/localhost/nfd/strategy/best-route/v=1"))

	assert.Empty(t, fib.FindNextHops(tu.Name("/a/b")))

	fib.InsertNextHop(tu.Name("/a"), 300, 10)
	fib.InsertNextHop(tu.Name("/a/b/c"), 301, 5)
	fib.InsertNextHop(tu.Name("/a"), 300, 20)

	nhs := fib.FindNextHops(tu.Name("/a/b"))
	require.Len(t, nhs, 1)
	assert.Equal(t, uint64(300), nhs[0].Nexthop)
	assert.Equal(t, uint64(20), nhs[0].Cost)

	nhs = fib.FindNextHops(tu.Name("/a/b/c/d"))
	require.Len(t, nhs, 1)
	assert.Equal(t, uint64(301), nhs[0].Nexthop)

	fib.RemoveNextHop(tu.Name("/a/b/c"), 301)
	assert.Equal(t, uint64(300), fib.FindNextHops(tu.Name("/a/b/c/d"))[0].Nexthop)

	fib.InsertNextHop(tu.Name("/x"), 300, 1)
	fib.RemoveFace(300)
	assert.Empty(t, fib.GetAllFIBEntries())
}

func TestStrategyChoice(t *testing.T) {
	tu.SetT(t)
	bestRoute := tu.Name("/localhost/nfd/strategy/best-route/v=1")
	multicast := tu.Name("/localhost/nfd/strategy/multicast/v=1")
	fib := NewFibStrategyTree(bestRoute)

	assert.True(t, bestRoute.Equal(fib.FindStrategy(tu.Name("/a/b"))))

	fib.SetStrategy(tu.Name("/a"), multicast)
	assert.True(t, multicast.Equal(fib.FindStrategy(tu.Name("/a/b"))))
	assert.True(t, bestRoute.Equal(fib.FindStrategy(tu.Name("/b"))))
	assert.Len(t, fib.GetAllForwardingStrategies(), 2)

	// nexthops survive unsetting a strategy on the same node
	fib.InsertNextHop(tu.Name("/a"), 300, 0)
	fib.UnSetStrategy(tu.Name("/a"))
	assert.True(t, bestRoute.Equal(fib.FindStrategy(tu.Name("/a/b"))))
	assert.Len(t, fib.FindNextHops(tu.Name("/a")), 1)

	// the root choice stays
	fib.UnSetStrategy(tu.Name("/"))
	assert.True(t, bestRoute.Equal(fib.FindStrategy(tu.Name("/"))))
}
