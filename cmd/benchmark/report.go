package main

import (
	"fmt"
	"io"

	"github.com/delaneyj/selkt/cmd/benchmark/templates"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
)

func renderTables(w io.Writer, results []*result) {
	tbl := table.NewWriter()
	tbl.SetTitle("selkt latency per write")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.cfg.Name,
			r.calc.Time.Avg,
			r.calc.Time.Min,
			r.calc.Time.P75,
			r.calc.Time.P99,
			r.calc.Time.Max,
		})
	}
	tbl.Render()

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{
		"scenario", "kind", "size", "nTimes", "drains",
		"notifications", "time", "updateRate", "digest",
	})
	for _, r := range results {
		summary.Append([]string{
			r.cfg.Name,
			string(r.cfg.Kind),
			fmt.Sprintf("%dx%d", r.cfg.Width, r.cfg.Height),
			humanize.Comma(int64(r.iterations)),
			humanize.Comma(r.drains),
			humanize.Comma(r.notifications),
			fmt.Sprint(r.duration),
			humanize.Comma(int64(r.updateRate())),
			fmt.Sprintf("%016x", r.digest),
		})
	}
	summary.Render()
}

func renderMarkdown(w io.Writer, results []*result) error {
	rows := make([]templates.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, templates.Row{
			Name:          r.cfg.Name,
			Kind:          string(r.cfg.Kind),
			Width:         r.cfg.Width,
			Height:        r.cfg.Height,
			Iterations:    int64(r.iterations),
			Notifications: r.notifications,
			Avg:           r.calc.Time.Avg,
			P99:           r.calc.Time.P99,
			Digest:        r.digest,
		})
	}
	templates.WriteMarkdown(w, "selkt benchmark", rows)
	return nil
}
