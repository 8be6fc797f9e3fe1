package fw

import (
	"testing"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsolicitedDataPolicies(t *testing.T) {
	tu.SetT(t)
	local := face.NewDummyFace(defn.Local, defn.PointToPoint)
	remote := face.NewDummyFace(defn.NonLocal, defn.PointToPoint)
	d := data("/u")

	cases := []struct {
		name          string
		local, remote UnsolicitedDataDecision
	}{
		{"drop-all", UnsolicitedDataDrop, UnsolicitedDataDrop},
		{"admit-local", UnsolicitedDataCache, UnsolicitedDataDrop},
		{"admit-network", UnsolicitedDataDrop, UnsolicitedDataCache},
		{"admit-all", UnsolicitedDataCache, UnsolicitedDataCache},
	}
	for _, c := range cases {
		policy, err := NewUnsolicitedDataPolicy(c.name)
		require.NoError(t, err)
		assert.Equal(t, c.name, policy.String())
		assert.Equal(t, c.local, policy.Decide(local, d), c.name)
		assert.Equal(t, c.remote, policy.Decide(remote, d), c.name)
	}
}

func TestNewUnsolicitedDataPolicy(t *testing.T) {
	policy, err := NewUnsolicitedDataPolicy("")
	require.NoError(t, err)
	assert.Equal(t, "drop-all", policy.String())

	_, err = NewUnsolicitedDataPolicy("admit-some")
	assert.Error(t, err)
}
