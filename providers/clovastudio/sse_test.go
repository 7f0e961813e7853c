package clovastudio

import (
	"testing"
)

func TestParserTwoFramesOneFeed(t *testing.T) {
	var p sseParser
	events := p.feed("event: token\ndata: {\"a\":1}\n\nevent: token\ndata: {\"b\":2}\n\n")

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Data != `{"a":1}` || events[1].Data != `{"b":2}` {
		t.Errorf("data = %q, %q", events[0].Data, events[1].Data)
	}
}

func TestParserArbitraryFragmentation(t *testing.T) {
	frame := "id: 1\nevent: token\ndata: {\"msg\":\"hi\"}\n\n"

	// Split the frame at every possible byte boundary.
	for cut := 1; cut < len(frame); cut++ {
		var p sseParser
		events := p.feed(frame[:cut])
		events = append(events, p.feed(frame[cut:])...)

		if len(events) != 1 {
			t.Fatalf("cut=%d: events = %d, want 1", cut, len(events))
		}
		ev := events[0]
		if ev.ID != "1" || ev.Event != "token" || ev.Data != `{"msg":"hi"}` {
			t.Errorf("cut=%d: event = %+v", cut, ev)
		}
	}
}

func TestParserIncompleteFrameBuffered(t *testing.T) {
	var p sseParser
	if events := p.feed("data: partial"); len(events) != 0 {
		t.Fatalf("incomplete frame produced events: %+v", events)
	}
	events := p.feed("\n\n")
	if len(events) != 1 || events[0].Data != "partial" {
		t.Fatalf("events = %+v", events)
	}
}

func TestParserSkipsFramesWithoutData(t *testing.T) {
	var p sseParser
	events := p.feed("event: ping\n\nid: 7\n\n\n\ndata: real\n\n")

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Data != "real" {
		t.Errorf("data = %q", events[0].Data)
	}
}

func TestParserFieldHandling(t *testing.T) {
	var p sseParser
	events := p.feed("id: 42\nevent: result\nretry: 3000\ndata: {\"x\": \"a:b\"}\n\n")

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.ID != "42" || ev.Event != "result" || ev.Retry != 3000 {
		t.Errorf("event = %+v", ev)
	}
	// Only the first colon splits the field; the value keeps the rest.
	if ev.Data != `{"x": "a:b"}` {
		t.Errorf("data = %q", ev.Data)
	}
}

func TestParserIgnoresBadRetry(t *testing.T) {
	var p sseParser
	events := p.feed("retry: soon\ndata: x\n\n")

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Retry != 0 {
		t.Errorf("Retry = %d, want 0", events[0].Retry)
	}
}

func TestParserIgnoresLinesWithoutColon(t *testing.T) {
	var p sseParser
	events := p.feed("garbage line\ndata: kept\n\n")

	if len(events) != 1 || events[0].Data != "kept" {
		t.Fatalf("events = %+v", events)
	}
}
