package core_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/std/log"
	"github.com/named-data/ndnfw/std/utils/toolutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	c := core.DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 6000, c.Tables.DeadNonceList.Lifetime)
	assert.Equal(t, "drop-all", c.Fw.UnsolicitedDataPolicy)
}

func TestConfigFromYaml(t *testing.T) {
	c := core.DefaultConfig()
	err := toolutils.DecodeYaml(c, strings.NewReader(`
core:
  log_level: DEBUG
fw:
  unsolicited_data_policy: admit-local
tables:
  dead_nonce_list:
    lifetime: 1000
  network_region:
    regions: ["/edu/ucla"]
  strategy_choice:
    - prefix: /mcast
      strategy: /localhost/nfd/strategy/multicast/v=1
  rib:
    routes:
      - prefix: /app
        face_id: 1
        cost: 10
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "DEBUG", c.Core.LogLevel)
	assert.Equal(t, 1000, c.Tables.DeadNonceList.Lifetime)
	assert.Equal(t, 1024, c.Tables.ContentStore.Capacity)
	assert.Equal(t, []string{"/edu/ucla"}, c.Tables.NetworkRegion.Regions)
	require.Len(t, c.Tables.StrategyChoice, 1)
	assert.Equal(t, "/mcast", c.Tables.StrategyChoice[0].Prefix)
	require.Len(t, c.Tables.Rib.Routes, 1)
	assert.Equal(t, uint64(10), c.Tables.Rib.Routes[0].Cost)
}

func TestConfigValidateErrors(t *testing.T) {
	c := core.DefaultConfig()
	c.Core.LogLevel = "LOUD"
	assert.Error(t, c.Validate())

	c = core.DefaultConfig()
	c.Tables.DeadNonceList.Lifetime = 0
	assert.Error(t, c.Validate())

	c = core.DefaultConfig()
	c.Tables.ContentStore.ReplacementPolicy = "fifo"
	assert.Error(t, c.Validate())

	c = core.DefaultConfig()
	c.Core.LogFormat = "xml"
	assert.Error(t, c.Validate())
}

func TestOpenLogger(t *testing.T) {
	c := core.DefaultConfig()
	c.Core.LogLevel = "WARN"
	c.Core.LogFormat = "json"
	c.Core.LogFile = filepath.Join(t.TempDir(), "fw.log")

	require.NoError(t, core.OpenLogger(c))
	assert.Equal(t, log.LevelWarn, core.Log.Level())
	core.CloseLogger()
	assert.Equal(t, log.Default(), core.Log)
}

func TestResolveRelPath(t *testing.T) {
	c := core.DefaultConfig()
	c.Core.BaseDir = filepath.Join("etc", "ndn")
	assert.Equal(t, filepath.Join("etc", "ndn", "fw.log"), c.ResolveRelPath("fw.log"))
	abs, _ := filepath.Abs("fw.log")
	assert.Equal(t, abs, c.ResolveRelPath(abs))
	assert.Equal(t, "", c.ResolveRelPath(""))
}
