package main

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

var showtimesCmd = &cobra.Command{
	Use:   "showtimes",
	Short: "Print the theater catalog as a table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()
		provider, closeCatalog, err := openCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeCatalog()

		theaters, err := provider.Theaters(cmd.Context())
		if err != nil {
			return err
		}
		renderShowtimes(cmd.OutOrStdout(), theaters)
		return nil
	},
}

func renderShowtimes(w io.Writer, theaters []model.Theater) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Theater", "Language", "Format", "Times"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true, WidthMax: 28},
	})
	t.Style().Options.SeparateRows = true

	for i, th := range theaters {
		for _, lang := range model.Languages {
			for _, f := range model.Formats {
				times := th.Times(lang, f)
				if len(times) == 0 {
					continue
				}
				t.AppendRow(table.Row{i, th.Name, lang, f, strings.Join(times, ", ")}, rowConfigAutoMerge)
			}
		}
	}
	t.Render()
}
