package identity

import "github.com/spf13/cobra"

func NewIdentityCMD() *cobra.Command {
	identityCmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage wallet identities",
	}
	identityCmd.AddCommand(
		newImportCMD(),
	)
	return identityCmd
}
