package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the novelpiad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("novelpiad version:", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
