package table

import (
	"testing"

	enc "github.com/named-data/ndnfw/std/encoding"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/assert"
)

func TestNetworkRegion(t *testing.T) {
	tu.SetT(t)
	var nrt NetworkRegionTable
	nrt.Add(tu.Name("/ndn/edu/ucla"))
	nrt.Add(tu.Name("/ndn/edu/ucla"))
	assert.Len(t, nrt.Regions(), 1)

	assert.True(t, nrt.IsInProducerRegion([]enc.Name{tu.Name("/ndn/edu/ucla")}))
	assert.True(t, nrt.IsInProducerRegion([]enc.Name{tu.Name("/other"), tu.Name("/ndn/edu")}))
	assert.False(t, nrt.IsInProducerRegion([]enc.Name{tu.Name("/ndn/edu/ucla/cs")}))
	assert.False(t, nrt.IsInProducerRegion(nil))
}
