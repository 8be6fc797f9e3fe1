package defn_test

import (
	"testing"
	"time"

	"github.com/named-data/ndnfw/fw/defn"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/assert"
)

func TestInterestMatchesData(t *testing.T) {
	tu.SetT(t)

	data := &defn.Data{Name: tu.Name("/a/b/c")}

	exact := &defn.Interest{Name: tu.Name("/a/b")}
	assert.False(t, exact.MatchesData(data))

	prefix := &defn.Interest{Name: tu.Name("/a/b"), CanBePrefix: true}
	assert.True(t, prefix.MatchesData(data))

	same := &defn.Interest{Name: tu.Name("/a/b/c")}
	assert.True(t, same.MatchesData(data))
}

func TestInterestLifetime(t *testing.T) {
	i := &defn.Interest{}
	assert.Equal(t, 4*time.Second, i.LifetimeOrDefault())
	i.Lifetime = 100 * time.Millisecond
	assert.Equal(t, 100*time.Millisecond, i.LifetimeOrDefault())
}

func TestTags(t *testing.T) {
	tu.SetT(t)

	i := &defn.Interest{Name: tu.Name("/a")}
	_, ok := i.Tag(defn.TagNextHopFaceID)
	assert.False(t, ok)
	assert.Equal(t, defn.InvalidFaceID, i.IncomingFaceID())

	i.SetTag(defn.TagIncomingFaceID, 300)
	i.SetTag(defn.TagNextHopFaceID, 301)
	assert.Equal(t, uint64(300), i.IncomingFaceID())

	c := i.Clone()
	c.SetTag(defn.TagIncomingFaceID, 400)
	assert.Equal(t, uint64(300), i.IncomingFaceID())

	i.RemoveTag(defn.TagNextHopFaceID)
	_, ok = i.Tag(defn.TagNextHopFaceID)
	assert.False(t, ok)
	v, ok := c.Tag(defn.TagNextHopFaceID)
	assert.True(t, ok)
	assert.Equal(t, uint64(301), v)
}

func TestNackSeverity(t *testing.T) {
	assert.True(t, defn.NackReasonCongestion.LessSevere(defn.NackReasonDuplicate))
	assert.True(t, defn.NackReasonDuplicate.LessSevere(defn.NackReasonNoRoute))
	assert.True(t, defn.NackReasonNoRoute.LessSevere(defn.NackReasonNone))
	assert.False(t, defn.NackReasonNoRoute.LessSevere(defn.NackReasonCongestion))
}

func TestScopePrefixes(t *testing.T) {
	tu.SetT(t)

	assert.True(t, defn.IsLocalhost(tu.Name("/localhost/a")))
	assert.False(t, defn.IsLocalhost(tu.Name("/a/localhost")))
	assert.True(t, defn.IsLocalhop(tu.Name("/localhop/x")))
	assert.Equal(t, "/localhost/nfd/strategy/best-route/v=1", defn.DEFAULT_STRATEGY.String())
}
