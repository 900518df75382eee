// Package export produces a streaming CSV rendition of the filtered
// application set without materializing it: rows are pulled page by page and
// the stream terminates when a page comes back empty.
package export

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/edarmartinez/job-hunt-os/internal/models"
)

// PageSize is the fixed page size the exporter paginates with, regardless of
// caller input.
const PageSize = 100

// Columns lists the exported field names in their fixed output order.
var Columns = []string{
	"id",
	"company",
	"role",
	"location",
	"source",
	"link",
	"salary_min",
	"salary_max",
	"employment_type",
	"stage",
	"status",
	"next_action_date",
	"notes",
	"created_at",
	"updated_at",
}

// PageFunc returns one page (1-indexed) of the filtered, ordered set.
type PageFunc func(ctx context.Context, page int) ([]models.Application, error)

// Streamer writes a CSV export by pulling successive pages. It is single-pass
// and non-restartable.
type Streamer struct {
	fetch PageFunc
}

// NewStreamer creates a Streamer over the given page source.
func NewStreamer(fetch PageFunc) *Streamer {
	return &Streamer{fetch: fetch}
}

// Stream writes the header row and then every record of every page until a
// page returns zero records. Termination is purely data-driven; no total
// count is consulted. When ctx is cancelled (e.g. the consumer disconnected)
// no further pages are fetched.
func (s *Streamer) Stream(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, EncodeRow(Columns)); err != nil {
		return err
	}

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, err := s.fetch(ctx, page)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		for i := range records {
			if _, err := io.WriteString(w, EncodeRow(RecordFields(&records[i]))); err != nil {
				return err
			}
		}
	}
}

// RecordFields stringifies one application in the Columns order. Absent
// values render as empty strings; dates as ISO-8601 calendar dates and
// timestamps as ISO-8601 date-times.
func RecordFields(app *models.Application) []string {
	return []string{
		strconv.FormatInt(app.ID, 10),
		app.Company,
		app.Role,
		strOrEmpty(app.Location),
		strOrEmpty(app.Source),
		strOrEmpty(app.Link),
		intOrEmpty(app.SalaryMin),
		intOrEmpty(app.SalaryMax),
		enumOrEmpty(app.EmploymentType),
		enumOrEmpty(app.Stage),
		enumOrEmpty(app.Status),
		dateOrEmpty(app.NextActionDate),
		strOrEmpty(app.Notes),
		app.CreatedAt.Format(time.RFC3339),
		app.UpdatedAt.Format(time.RFC3339),
	}
}

// EncodeRow renders one newline-terminated CSV row.
func EncodeRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	return strings.Join(quoted, ",") + "\n"
}

// quoteField wraps the value in double quotes only when it contains a comma,
// a double quote, or a newline, doubling any internal double quotes.
func quoteField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func enumOrEmpty[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func dateOrEmpty(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
