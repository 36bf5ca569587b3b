package cmd

import (
	"fmt"

	"github.com/brogergvhs/novelpiad/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := config.ListConfigs()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(infos) == 0 {
			fmt.Println("No configs yet. Run `novelpiad config init` to create one.")
			return nil
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			active := ""
			if info.Active {
				active = "yes"
			}
			rows = append(rows, []string{info.Label, info.Path, active})
		}

		fmt.Println(renderTable([]string{"LABEL", "PATH", "ACTIVE"}, rows))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
