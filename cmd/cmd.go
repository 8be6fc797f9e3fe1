package cmd

import (
	fw "github.com/named-data/ndnfw/fw/cmd"
	"github.com/named-data/ndnfw/fw/core"
	"github.com/spf13/cobra"
)

var CmdNDNfw = &cobra.Command{
	Use:     "ndnfw",
	Short:   "Named Data Networking Forwarder",
	Long:    "Named Data Networking Forwarder",
	Version: core.Version,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdNDNfw.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdNDNfw.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdNDNfw.PersistentFlags().Lookup("help").Hidden = true

	CmdNDNfw.AddGroup(&cobra.Group{ID: "run", Title: "Forwarder Daemon"})
	CmdNDNfw.AddCommand(fw.CmdRun)
	CmdNDNfw.AddCommand(fw.CmdConfig)
}
