// Package ics converts calendar events to and from the iCalendar format
// for exchange with other calendar applications.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/example/desktop-calendar/internal/application"
)

const (
	productID = "-//desktop-calendar//Calendar Export//EN"

	dateLayout     = "20060102"
	dateTimeLayout = "20060102T150405Z"
)

// Exporter writes events as an iCalendar stream.
type Exporter struct {
	now func() time.Time
}

// NewExporter creates an exporter. The clock is injectable for tests; nil
// means time.Now.
func NewExporter(now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{now: now}
}

// Export encodes the events as a single VCALENDAR.
func (e *Exporter) Export(w io.Writer, events []application.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, event := range events {
		component, err := e.eventComponent(event)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func (e *Exporter) eventComponent(event application.Event) (*ical.Component, error) {
	out := ical.NewEvent()
	out.Props.SetText(ical.PropUID, eventUID(event))
	out.Props.SetDateTime(ical.PropDateTimeStamp, e.now().UTC())
	out.Props.SetText(ical.PropSummary, event.Title)

	if event.Description != nil && *event.Description != "" {
		out.Props.SetText(ical.PropDescription, *event.Description)
	}
	if event.Location != nil && *event.Location != "" {
		out.Props.SetText(ical.PropLocation, *event.Location)
	}
	if event.Category != nil && *event.Category != "" {
		out.Props.SetText(ical.PropCategories, *event.Category)
	}

	if event.AllDay {
		setDateProp(out.Props, ical.PropDateTimeStart, event.Start)
		setDateProp(out.Props, ical.PropDateTimeEnd, event.End)
	} else {
		out.Props.SetDateTime(ical.PropDateTimeStart, event.Start.UTC())
		out.Props.SetDateTime(ical.PropDateTimeEnd, event.End.UTC())
	}

	if event.IsRecurring() {
		// RRULE values carry semicolons and commas that must not be
		// text-escaped, so the raw value is set directly.
		rule := ical.NewProp(ical.PropRecurrenceRule)
		rule.Value = *event.RecurrenceRule
		out.Props.Set(rule)
	}

	if len(event.RecurrenceExceptions) > 0 {
		values := make([]string, len(event.RecurrenceExceptions))
		for i, t := range event.RecurrenceExceptions {
			values[i] = t.UTC().Format(dateTimeLayout)
		}
		exdate := ical.NewProp(ical.PropExceptionDates)
		exdate.Value = strings.Join(values, ",")
		out.Props.Set(exdate)
	}

	return out.Component, nil
}

func eventUID(event application.Event) string {
	if event.ID != 0 {
		return fmt.Sprintf("event-%d@desktop-calendar", event.ID)
	}
	return uuid.NewString() + "@desktop-calendar"
}

func setDateProp(props ical.Props, name string, t time.Time) {
	prop := ical.NewProp(name)
	prop.Value = t.Format(dateLayout)
	prop.Params.Set(ical.ParamValue, "DATE")
	props.Set(prop)
}
