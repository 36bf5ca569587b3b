package cmd

import (
	"fmt"
	"strconv"

	"github.com/brogergvhs/novelpiad/internal/config"
	"github.com/brogergvhs/novelpiad/internal/providers"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	flagListNovel int
	flagListRange string
	flagListList  string
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the episode ids of a novel without downloading",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	listCmd.Flags().IntVar(&flagListNovel, "novel", 0, "numeric novel id")
	listCmd.Flags().StringVar(&flagListRange, "range", "", "only show a range of indices (e.g. 5-12)")
	listCmd.Flags().StringVar(&flagListList, "list", "", "only show specific indices (e.g. 1,3,5)")

	addSiteFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := newSession(config.Options{
		DefaultNovel: flagListNovel,
		DefaultRange: flagListRange,
		DefaultList:  flagListList,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cfg.DefaultNovel <= 0 {
		return fmt.Errorf("missing --novel and no default_novel in config")
	}

	ids, err := s.src.EpisodeIDs(cmd.Context(), s.cfg.DefaultNovel)
	if err != nil {
		return err
	}

	indexed := make([]int, len(ids))
	for i := range ids {
		indexed[i] = i
	}
	selected := providers.Filter(indexed, s.cfg.DefaultRange, s.cfg.DefaultList)

	rows := make([][]string, 0, len(selected))
	for _, i := range selected {
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(ids[i])})
	}

	fmt.Println(renderTable([]string{"#", "EPISODE ID"}, rows))
	fmt.Printf("%d of %d episodes\n", len(selected), len(ids))
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
