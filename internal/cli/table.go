package cli

import (
	"fmt"
	"strconv"

	"github.com/bastiangx/wordsim/pkg/corpus"
	"github.com/bastiangx/wordsim/pkg/similarity"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderMatches draws ranked matches as a rounded table
func renderMatches(ds *corpus.Dataset, matches []similarity.Match) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"#", "Word", "Similarity", "Total"})

	for i, m := range matches {
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			m.Word,
			fmt.Sprintf("%.4f", m.Score),
			humanize.Comma(int64(ds.Total(m.Word))),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
