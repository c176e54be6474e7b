package domain

import (
	"fmt"
	"time"
)

// DateLayout is the schema date format of report periods.
const DateLayout = "2006-01-02"

// ReportPeriod is the closed date interval a report covers. Boundaries are
// calendar dates pinned to midnight UTC; the time portion of any input is
// discarded.
type ReportPeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// DateOf strips the time of day from t and keeps the calendar date as
// observed in t's own offset.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewReportPeriod(start, end time.Time) (ReportPeriod, error) {
	p := ReportPeriod{StartDate: DateOf(start), EndDate: DateOf(end)}
	if err := p.Validate(); err != nil {
		return ReportPeriod{}, err
	}
	return p, nil
}

// MonthOf is the calendar-month period containing t.
func MonthOf(t time.Time) ReportPeriod {
	d := DateOf(t)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return ReportPeriod{StartDate: start, EndDate: start.AddDate(0, 1, -1)}
}

// ParseMonth interprets s as an ISO year and month, e.g. "2023-06", and
// returns the matching calendar-month period.
func ParseMonth(s string) (ReportPeriod, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return ReportPeriod{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return MonthOf(t), nil
}

func (p ReportPeriod) Validate() error {
	if p.StartDate.IsZero() {
		return &ValidationError{Field: "StartDate", Reason: "must not be zero"}
	}
	if p.EndDate.IsZero() {
		return &ValidationError{Field: "EndDate", Reason: "must not be zero"}
	}
	if p.EndDate.Before(p.StartDate) {
		return &ValidationError{Field: "EndDate", Reason: "must not be before StartDate"}
	}
	return nil
}

// Contains reports whether the calendar date of t falls inside the period.
func (p ReportPeriod) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Days lists every calendar date of the period in order.
func (p ReportPeriod) Days() []time.Time {
	var days []time.Time
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p ReportPeriod) String() string {
	return fmt.Sprintf("%s..%s", p.StartDate.Format(DateLayout), p.EndDate.Format(DateLayout))
}
