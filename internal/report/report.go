/*
Package report prints run results as console tables.
*/
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/shanehull/bultentakip/internal/bulletin"
	"github.com/shanehull/bultentakip/internal/types"
)

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "-"
}

func period(title string) string {
	m, y, ok := bulletin.ParsePeriod(title)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d-%02d", y, int(m))
}

// PrintOutcomes writes one row per processed bulletin.
func PrintOutcomes(w io.Writer, outcomes []types.Outcome) {
	if len(outcomes) == 0 {
		fmt.Fprintln(w, "No new bulletins processed.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Period", "Title", "File", "Downloaded", "Uploaded", "Notified", "Error"})

	for i, o := range outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		t.AppendRow(table.Row{
			i + 1,
			period(o.Title),
			o.Title,
			o.FileName,
			mark(o.Downloaded),
			mark(o.Uploaded),
			mark(o.Notified),
			errText,
		})
	}

	t.Render()
}

// PrintSnapshot writes the listing, flagging bulletins that are new against
// previous.
func PrintSnapshot(w io.Writer, current, previous types.Snapshot) {
	fresh := bulletin.FindNew(current, previous).URLSet()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Period", "Title", "URL", "New"})

	for i, b := range current {
		_, isNew := fresh[b.URL]
		t.AppendRow(table.Row{i + 1, period(b.Title), b.Title, b.URL, mark(isNew)})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d bulletins", len(current)), "", fmt.Sprintf("%d new", len(fresh))})

	t.Render()
}
