package defn_test

import (
	"reflect"
	"testing"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/stretchr/testify/assert"
)

func TestCountersEach(t *testing.T) {
	c := defn.FwCounters{NPitEntries: 2, NInInterests: 5, NCsMisses: 7}

	values := map[string]uint64{}
	c.Each(func(name string, value uint64) {
		_, dup := values[name]
		assert.False(t, dup, name)
		values[name] = value
	})

	// every field is reported
	assert.Len(t, values, reflect.TypeOf(c).NumField())
	assert.Equal(t, uint64(2), values["nPitEntries"])
	assert.Equal(t, uint64(5), values["nInInterests"])
	assert.Equal(t, uint64(7), values["nCsMisses"])
	assert.Equal(t, uint64(0), values["nOutData"])
}
