// Package ical renders and parses the iCalendar documents behind the
// calendar-export download. Only the fields the export emits are
// supported; this is not a general RFC 5545 implementation.
package ical

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	prodID       = "-//FocusQuest//Task Sync//EN"
	calendarName = "FocusQuest Tasks"
	uidDomain    = "focusquest.app"

	// UTC timestamp layout used for DTSTAMP/DTSTART/DTEND. Sub-second
	// precision is dropped on purpose; consumers round-trip to the
	// second.
	stampLayout = "20060102T150405Z"
)

type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Category    string
	Priority    int
}

// Build renders one VCALENDAR with a VEVENT per event. Lines are CRLF
// separated per the format.
func Build(events []Event, timezone string, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + calendarName,
		"X-WR-TIMEZONE:" + timezone,
	}

	stamp := now.UTC().Format(stampLayout)
	for _, event := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:%s@%s", event.ID, uidDomain),
			"DTSTAMP:"+stamp,
			"DTSTART:"+event.Start.UTC().Format(stampLayout),
			"DTEND:"+event.End.UTC().Format(stampLayout),
			"SUMMARY:"+event.Title,
		)
		if event.Description != "" {
			lines = append(lines, "DESCRIPTION:"+strings.ReplaceAll(event.Description, "\n", "\\n"))
		}
		lines = append(lines,
			"CATEGORIES:"+event.Category,
			"PRIORITY:"+strconv.Itoa(event.Priority),
			"STATUS:CONFIRMED",
			"TRANSP:OPAQUE",
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

var errMalformed = errors.New("malformed icalendar document")

// Parse reads back a document produced by Build.
func Parse(document string) ([]Event, error) {
	var events []Event
	var current *Event

	for _, raw := range strings.Split(document, "\n") {
		line := strings.TrimRight(raw, "\r")
		if line == "" {
			continue
		}

		key, value, _ := strings.Cut(line, ":")
		switch key {
		case "BEGIN":
			if value == "VEVENT" {
				if current != nil {
					return nil, errMalformed
				}
				current = &Event{}
			}
		case "END":
			if value == "VEVENT" {
				if current == nil {
					return nil, errMalformed
				}
				events = append(events, *current)
				current = nil
			}
		}

		if current == nil {
			continue
		}

		switch key {
		case "UID":
			current.ID = strings.TrimSuffix(value, "@"+uidDomain)
		case "SUMMARY":
			current.Title = value
		case "DESCRIPTION":
			current.Description = strings.ReplaceAll(value, "\\n", "\n")
		case "CATEGORIES":
			current.Category = value
		case "PRIORITY":
			priority, err := strconv.Atoi(value)
			if err != nil {
				return nil, errMalformed
			}
			current.Priority = priority
		case "DTSTART":
			start, err := time.Parse(stampLayout, value)
			if err != nil {
				return nil, errMalformed
			}
			current.Start = start
		case "DTEND":
			end, err := time.Parse(stampLayout, value)
			if err != nil {
				return nil, errMalformed
			}
			current.End = end
		}
	}

	if current != nil {
		return nil, errMalformed
	}
	return events, nil
}
