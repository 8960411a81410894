package project

import "github.com/spf13/cobra"

func NewProjectCMD() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Scaffold smart contract projects",
	}
	projectCmd.AddCommand(
		newCreateCMD(),
	)
	return projectCmd
}
