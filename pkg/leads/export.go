package leads

import (
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// CSVHeader lists the exported columns in order.
var CSVHeader = []string{"name", "phone", "interest", "stage", "followUp", "createdAt", "updatedAt"}

// ExportCSV renders c as CSV: the header row, then one row per lead in
// collection order. Every field is double-quoted with embedded quotes
// doubled; rows are separated by "\n" with no trailing newline.
// Returns ErrNothingToExport for an empty collection.
func ExportCSV(c types.Collection) ([]byte, error) {
	if len(c) == 0 {
		return nil, types.ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(strings.Join(CSVHeader, ","))
	for _, l := range c {
		b.WriteByte('\n')
		writeRow(&b, csvFields(l))
	}
	return []byte(b.String()), nil
}

// ExportFileName names an export made at now, e.g. leads_2024-01-15.csv.
func ExportFileName(now time.Time) string {
	return "leads_" + now.UTC().Format(time.DateOnly) + ".csv"
}

func csvFields(l types.Lead) []string {
	return []string{
		l.Name,
		l.Phone,
		l.Interest,
		string(l.Stage),
		strconv.FormatBool(l.FollowUp),
		l.CreatedAt.String(),
		l.UpdatedAt.String(),
	}
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}
