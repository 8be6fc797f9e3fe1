package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/std/utils/toolutils"
	"github.com/spf13/cobra"
)

var config = core.DefaultConfig()

var CmdRun = &cobra.Command{
	Use:     "run CONFIG-FILE",
	Short:   "Start the NDN forwarder",
	GroupID: "run",
	Version: core.Version,
	Args:    cobra.ExactArgs(1),
	RunE:    run,
}

var CmdConfig = &cobra.Command{
	Use:     "config",
	Short:   "Print the default configuration",
	GroupID: "run",
	Args:    cobra.NoArgs,
	RunE:    printConfig,
}

func init() {
	CmdRun.Flags().StringVar(&config.Core.CpuProfile, "cpu-profile", "", "Write CPU profile to file")
	CmdRun.Flags().StringVar(&config.Core.MemProfile, "mem-profile", "", "Write memory profile to file")
	CmdRun.Flags().StringVar(&config.Core.BlockProfile, "block-profile", "", "Write block profile to file")
}

func run(cmd *cobra.Command, args []string) error {
	configfile := args[0]
	config.Core.BaseDir = filepath.Dir(configfile)

	if err := toolutils.ReadYaml(config, configfile); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	core.C = config

	if err := core.OpenLogger(config); err != nil {
		return err
	}
	defer core.CloseLogger()

	daemon, err := NewDaemon(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := daemon.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	core.Log.Info(daemon, "Received signal - exit")

	printCounters(cmd.OutOrStdout(), daemon.Stop())
	return nil
}

func printConfig(cmd *cobra.Command, _ []string) error {
	return toolutils.WriteYaml(cmd.OutOrStdout(), core.DefaultConfig())
}

func printCounters(w io.Writer, c defn.FwCounters) {
	fmt.Fprintln(w, "Forwarder counters:")
	p := toolutils.StatusPrinter{File: w, Padding: 24}
	c.Each(func(name string, value uint64) { p.Print(name, value) })
}
