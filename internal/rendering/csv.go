package rendering

import (
	"encoding/csv"
	"io"

	"github.com/jonathan/content-calendar/internal/types"
)

// WriteCalendarCSV writes the calendar as CSV with a header row, ready to paste into a spreadsheet.
func WriteCalendarCSV(w io.Writer, entries []types.CalendarEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CalendarColumns); err != nil {
		return &RenderError{Format: "csv", Message: "failed to write header", Cause: err}
	}
	for _, e := range entries {
		if err := cw.Write(CalendarRow(e)); err != nil {
			return &RenderError{Format: "csv", Message: "failed to write row " + e.Date, Cause: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &RenderError{Format: "csv", Message: "failed to flush", Cause: err}
	}
	return nil
}
