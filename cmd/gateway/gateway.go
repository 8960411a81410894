package gateway

import "github.com/spf13/cobra"

func NewGatewayCMD() *cobra.Command {
	gatewayCmd := &cobra.Command{
		Use:   "gateway",
		Short: "Manage gateway connection profiles",
	}
	gatewayCmd.AddCommand(
		newAddCMD(),
		newListCMD(),
	)
	return gatewayCmd
}
