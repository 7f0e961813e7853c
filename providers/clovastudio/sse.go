package clovastudio

import (
	"strconv"
	"strings"
)

// sseEvent is one parsed Server-Sent Event frame.
type sseEvent struct {
	ID    string
	Event string
	Data  string
	Retry int
}

// sseParser incrementally parses an SSE byte stream into events.
// Feed accepts arbitrary fragments; frames split across reads are
// buffered until the terminating blank line arrives.
type sseParser struct {
	buf strings.Builder
}

// feed appends a fragment and returns all complete events it closed.
// Frames without a data field are dropped, matching the API's framing
// where id/event/retry only accompany data.
func (p *sseParser) feed(fragment string) []sseEvent {
	p.buf.WriteString(fragment)

	raw := p.buf.String()
	var events []sseEvent

	for {
		idx := strings.Index(raw, "\n\n")
		if idx < 0 {
			break
		}
		block := raw[:idx]
		raw = raw[idx+2:]

		if ev, ok := parseBlock(block); ok {
			events = append(events, ev)
		}
	}

	p.buf.Reset()
	p.buf.WriteString(raw)
	return events
}

// parseBlock parses a single event block. Lines without a colon are
// ignored; field values are stripped of one leading space run; an
// unparseable retry value is ignored.
func parseBlock(block string) (sseEvent, bool) {
	if strings.TrimSpace(block) == "" {
		return sseEvent{}, false
	}

	var ev sseEvent
	for _, line := range strings.Split(block, "\n") {
		if line == "" {
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimLeft(value, " ")

		switch field {
		case "id":
			ev.ID = value
		case "event":
			ev.Event = value
		case "data":
			ev.Data = value
		case "retry":
			if n, err := strconv.Atoi(value); err == nil {
				ev.Retry = n
			}
		}
	}

	if ev.Data == "" {
		return sseEvent{}, false
	}
	return ev, true
}
