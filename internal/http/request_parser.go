package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"outlay/internal/core"
)

// parseListFilter reads the query parameters of a list request. Unusable
// values are ignored rather than rejected, matching the permissive
// contract of core.Filter.
func parseListFilter(q url.Values) core.Filter {
	f := core.Filter{
		Category: q.Get("category"),
	}
	if d := parseDateParam(q.Get("startDate")); d != nil {
		f.StartDate = d
	}
	if raw := q.Get("endDate"); raw != "" {
		if d := parseDateParam(raw); d != nil {
			// A date-only upper bound means the end of that day.
			if _, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
				end := d.Add(24*time.Hour - time.Second)
				f.EndDate = &end
			} else {
				f.EndDate = d
			}
		}
	}
	f.Month = parseIntParam(q.Get("month"))
	f.Year = parseIntParam(q.Get("year"))
	return f
}

// parseSummaryFilter reads the query parameters of a summary request,
// which supports category and month/year but no explicit date range.
func parseSummaryFilter(q url.Values) core.Filter {
	return core.Filter{
		Category: q.Get("category"),
		Month:    parseIntParam(q.Get("month")),
		Year:     parseIntParam(q.Get("year")),
	}
}

// parseDateParam accepts a plain date or an RFC 3339 timestamp. Times are
// interpreted in the server's location so they line up with month bounds.
func parseDateParam(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		local := t.In(time.Local)
		return &local
	}
	return nil
}

func parseIntParam(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func parseIDVar(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
