package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/olekukonko/tablewriter"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/response"
)

func (sh *shell) render(r *response.Response) {
	if r.Data != nil {
		if err := writeTable(sh.out, r.Data); err != nil {
			sh.log.Error().Err(err).Msg("Rendering rows failed")
		}
	}

	switch r.Status.Severity() {
	case response.SeverityNone:
		if r.Affected > 0 {
			fmt.Fprintf(sh.out, "%s affected\n", english.Plural(int(r.Affected), "record", ""))
		}
		if r.Detail != "" {
			fmt.Fprintf(sh.out, "warning: could not refresh rows: %s\n", r.Detail)
		}
	case response.SeverityInfo:
		fmt.Fprintf(sh.out, "note: %s\n", r.Message)
	case response.SeverityFailure:
		fmt.Fprintf(sh.out, "failed: %s\n", r.Message)
	default:
		fmt.Fprintf(sh.out, "error: %s\n", r.Message)
		if r.Detail != "" {
			fmt.Fprintf(sh.out, "  cause: %s\n", r.Detail)
		}
	}

	fields := make([]string, 0, len(r.Fields))
	for f := range r.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(sh.out, "  %s: %s\n", f, r.Fields[f])
	}
}

func writeTable(w io.Writer, rows []model.StudentRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Grade")
	for _, s := range rows {
		if err := table.Append([]string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			humanize.Ftoa(s.Grade),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
