package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/named-data/ndnfw/std/utils/toolutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDaemon(t *testing.T) *Daemon {
	tu.SetT(t)
	cfg := core.DefaultConfig()
	cfg.Tables.Rib.Routes = []core.RouteConfig{
		{Prefix: "/app", FaceID: 300, Cost: 10, ChildInherit: true},
	}
	d, err := NewDaemon(cfg)
	require.NoError(t, err)
	return d
}

func TestDaemonRoutes(t *testing.T) {
	d := newTestDaemon(t)
	rib := d.Forwarder().Rib()
	assert.True(t, rib.HasFaceID(tu.Name("/app"), 300))
	assert.True(t, rib.HasFaceID(defn.LOCAL_PREFIX, defn.InternalFaceID))

	assert.NotNil(t, d.Faces().Get(defn.NullFaceID))
	assert.NotNil(t, d.Faces().Get(defn.InternalFaceID))
}

func TestDaemonRequiresQueue(t *testing.T) {
	tu.SetT(t)
	cfg := core.DefaultConfig()
	cfg.Fw.QueueSize = 0
	require.NoError(t, cfg.Validate())
	_, err := NewDaemon(cfg)
	assert.Error(t, err)
}

func TestDaemonStatus(t *testing.T) {
	d := newTestDaemon(t)
	app := face.NewDummyFace(defn.Local, defn.PointToPoint)
	d.Faces().Add(app)

	require.NoError(t, d.Start())
	app.ReceiveInterest(&defn.Interest{Name: tu.Name("/localhost/nfd/status/general"), Nonce: 1}, 0)
	require.Eventually(t, func() bool { return len(app.SentData()) == 1 }, time.Second, 5*time.Millisecond)
	counters := d.Stop()

	status := StatusDataset{}
	require.NoError(t, toolutils.DecodeYaml(&status, bytes.NewReader(app.SentData()[0].Data.Content)))
	assert.Equal(t, core.Version, status.Version)
	assert.Equal(t, uint64(1), status.Counters.NInInterests)

	assert.Equal(t, uint64(1), counters.NInInterests)
	assert.Equal(t, uint64(1), counters.NInData)
	assert.Equal(t, uint64(1), counters.NOutData)
	assert.Equal(t, uint64(1), counters.NSatisfiedInterests)
}

func TestDaemonNacksUnknownInternalName(t *testing.T) {
	d := newTestDaemon(t)
	app := face.NewDummyFace(defn.Local, defn.PointToPoint)
	d.Faces().Add(app)

	require.NoError(t, d.Start())
	defer d.Stop()

	app.ReceiveInterest(&defn.Interest{Name: tu.Name("/localhost/nfd/nothing"), Nonce: 2}, 0)
	require.Eventually(t, func() bool { return len(app.SentNacks()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, defn.NackReasonNoRoute, app.SentNacks()[0].Nack.Reason())
}

func TestPrintConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	CmdConfig.SetOut(buf)
	require.NoError(t, printConfig(CmdConfig, nil))
	assert.Contains(t, buf.String(), "default_strategy:")

	// the output is a valid configuration file
	c := core.DefaultConfig()
	require.NoError(t, toolutils.DecodeYaml(c, bytes.NewReader(buf.Bytes())))
	require.NoError(t, c.Validate())
	assert.Equal(t, core.DefaultConfig().Fw.DefaultStrategy, c.Fw.DefaultStrategy)
}

func TestPrintCounters(t *testing.T) {
	buf := &bytes.Buffer{}
	printCounters(buf, defn.FwCounters{NInInterests: 3})
	assert.Contains(t, buf.String(), "            nInInterests=3\n")
}
