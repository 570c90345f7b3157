package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/example/desktop-calendar/internal/application"
)

// Importer reads iCalendar streams into event inputs.
type Importer struct {
	location *time.Location
}

// NewImporter creates an importer. Floating times in the input are
// interpreted in the given location; nil means the process-local timezone.
func NewImporter(loc *time.Location) *Importer {
	if loc == nil {
		loc = time.Local
	}
	return &Importer{location: loc}
}

// Import decodes every VEVENT in the stream. Components without a summary
// or a start time are skipped rather than failing the whole import.
func (i *Importer) Import(r io.Reader) ([]application.EventInput, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, errors.New("no events found in calendar")
	}

	inputs := make([]application.EventInput, 0, len(events))
	for _, event := range events {
		input, ok := i.eventInput(event)
		if !ok {
			continue
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (i *Importer) eventInput(event ical.Event) (application.EventInput, bool) {
	var input application.EventInput

	summary, err := event.Props.Text(ical.PropSummary)
	if err != nil || strings.TrimSpace(summary) == "" {
		return input, false
	}
	input.Title = summary

	start, allDay, ok := i.dateTimeProp(event.Props, ical.PropDateTimeStart)
	if !ok {
		return input, false
	}
	input.Start = start
	input.AllDay = allDay

	if end, _, ok := i.dateTimeProp(event.Props, ical.PropDateTimeEnd); ok {
		input.End = end
	} else if allDay {
		input.End = start.AddDate(0, 0, 1)
	} else {
		input.End = start
	}

	if description, err := event.Props.Text(ical.PropDescription); err == nil && description != "" {
		input.Description = &description
	}
	if location, err := event.Props.Text(ical.PropLocation); err == nil && location != "" {
		input.Location = &location
	}
	if category, err := event.Props.Text(ical.PropCategories); err == nil && category != "" {
		input.Category = &category
	}

	if rule := event.Props.Get(ical.PropRecurrenceRule); rule != nil && rule.Value != "" {
		value := rule.Value
		input.RecurrenceRule = &value
	}

	if exdate := event.Props.Get(ical.PropExceptionDates); exdate != nil && exdate.Value != "" {
		input.RecurrenceExceptions = i.parseExceptionDates(exdate.Value, exdate.Params)
	}

	return input, true
}

// dateTimeProp reads a DTSTART/DTEND style property, reporting whether the
// value was date-only.
func (i *Importer) dateTimeProp(props ical.Props, name string) (time.Time, bool, bool) {
	prop := props.Get(name)
	if prop == nil || prop.Value == "" {
		return time.Time{}, false, false
	}

	if isDateValue(prop) {
		if t, err := time.ParseInLocation(dateLayout, prop.Value, i.location); err == nil {
			return t, true, true
		}
		return time.Time{}, false, false
	}

	if t, err := time.Parse(dateTimeLayout, prop.Value); err == nil {
		return t, false, true
	}
	// Floating local time without a zone designator.
	if t, err := time.ParseInLocation("20060102T150405", prop.Value, i.location); err == nil {
		return t, false, true
	}
	if t, err := time.ParseInLocation(dateLayout, prop.Value, i.location); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

func (i *Importer) parseExceptionDates(value string, params ical.Params) []time.Time {
	dateOnly := strings.EqualFold(params.Get(ical.ParamValue), "DATE")

	var exceptions []time.Time
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dateOnly {
			if t, err := time.ParseInLocation(dateLayout, part, i.location); err == nil {
				exceptions = append(exceptions, t)
			}
			continue
		}
		if t, err := time.Parse(dateTimeLayout, part); err == nil {
			exceptions = append(exceptions, t)
			continue
		}
		if t, err := time.ParseInLocation(dateLayout, part, i.location); err == nil {
			exceptions = append(exceptions, t)
		}
	}
	return exceptions
}

func isDateValue(prop *ical.Prop) bool {
	return strings.EqualFold(prop.Params.Get(ical.ParamValue), "DATE")
}
