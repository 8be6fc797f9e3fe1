package fw

import (
	"testing"

	"github.com/named-data/ndnfw/fw/defn"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMulticastForwarder(t *testing.T) *testForwarder {
	tf := newTestForwarder(t, nil)
	require.NoError(t, tf.SetStrategy(tu.Name("/"), tu.Name("/localhost/nfd/strategy/multicast")))
	return tf
}

func TestMulticastForwardsToAll(t *testing.T) {
	tf := newMulticastForwarder(t)
	f1 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	f2 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	up1 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	up2 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	tf.route("/a", up1.FaceID(), 0)
	tf.route("/a", up2.FaceID(), 0)
	tf.route("/a", f1.FaceID(), 0)

	f1.ReceiveInterest(interest("/a", 1), 0)
	assert.Len(t, up1.SentInterests(), 1)
	assert.Len(t, up2.SentInterests(), 1)
	assert.Empty(t, f1.SentInterests())

	// up1 and up2 are suppressed, f1 is a new upstream for f2
	tf.advance(MulticastSuppressionTime / 2)
	f2.ReceiveInterest(interest("/a", 2), 0)
	assert.Len(t, up1.SentInterests(), 1)
	assert.Len(t, up2.SentInterests(), 1)
	assert.Len(t, f1.SentInterests(), 1)
	assert.Empty(t, f2.SentNacks())

	tf.advance(MulticastSuppressionTime / 2)
	f2.ReceiveInterest(interest("/a", 3), 0)
	assert.Len(t, up1.SentInterests(), 2)
	assert.Len(t, up2.SentInterests(), 2)
	assert.Len(t, f1.SentInterests(), 1)
}

func TestMulticastNoRoute(t *testing.T) {
	tf := newMulticastForwarder(t)
	f1 := tf.addFace(defn.NonLocal, defn.PointToPoint)

	f1.ReceiveInterest(interest("/a", 1), 0)
	require.Len(t, f1.SentNacks(), 1)
	assert.Equal(t, defn.NackReasonNoRoute, f1.SentNacks()[0].Nack.Reason())
}

func TestMulticastNackAggregation(t *testing.T) {
	tf := newMulticastForwarder(t)
	f1 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	up1 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	up2 := tf.addFace(defn.NonLocal, defn.PointToPoint)
	tf.route("/a", up1.FaceID(), 0)
	tf.route("/a", up2.FaceID(), 0)

	f1.ReceiveInterest(interest("/a", 1), 0)

	up1.ReceiveNack(&defn.Nack{Interest: interest("/a", 1), Header: defn.NackHeader{Reason: defn.NackReasonNoRoute}}, 0)
	assert.Empty(t, f1.SentNacks())
	assert.False(t, tf.entry("/a").ExpiryTime().Equal(tf.clock.Now()))

	up2.ReceiveNack(&defn.Nack{Interest: interest("/a", 1), Header: defn.NackHeader{Reason: defn.NackReasonCongestion}}, 0)
	require.Len(t, f1.SentNacks(), 1)
	assert.Equal(t, defn.NackReasonCongestion, f1.SentNacks()[0].Nack.Reason())
}
