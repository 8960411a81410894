package cmd

import (
	"github.com/kfsoftware/hlf-gateway-manager/cmd/gateway"
	"github.com/kfsoftware/hlf-gateway-manager/cmd/identity"
	"github.com/kfsoftware/hlf-gateway-manager/cmd/project"
	"github.com/kfsoftware/hlf-gateway-manager/log"
	"github.com/spf13/cobra"
)

func NewRootCMD() *cobra.Command {
	debug := false
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use:   "hlf-gateway-manager",
		Short: "Manage Hyperledger Fabric gateways, wallets and contract projects",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetDebug()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(
		gateway.NewGatewayCMD(),
		identity.NewIdentityCMD(),
		project.NewProjectCMD(),
	)
	return rootCmd
}
