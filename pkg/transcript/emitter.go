package transcript

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DisplayFunc writes one line of transcript output. It mirrors the
// display transport's `display(line, style?)` call: the style token is
// advisory and may be ignored by the transport.
type DisplayFunc func(line string, style Style)

// WriterDisplay returns a DisplayFunc that writes styled lines to w.
func WriterDisplay(w io.Writer, palette Palette) DisplayFunc {
	return func(line string, style Style) {
		fmt.Fprintln(w, palette.Sprint(style, line))
	}
}

type eventKey struct {
	kind string
	host string
	task string
}

type pendingBlock struct {
	lines []string
	style Style
}

// Emitter owns the incremental JSON document protocol for one playbook
// run: the opening scaffold, exactly one comma-deferred pending event
// block, the dedup key set, and the closing recap. Construct one per
// document and discard it afterwards.
type Emitter struct {
	display DisplayFunc
	opened  bool
	pending *pendingBlock
	seen    map[eventKey]struct{}
}

func NewEmitter(display DisplayFunc) *Emitter {
	return &Emitter{
		display: display,
		seen:    make(map[eventKey]struct{}),
	}
}

// Open prints the document scaffold. Safe to call more than once; only
// the first call emits output.
func (e *Emitter) Open() {
	if e.opened {
		return
	}

	e.display("{", StyleNone)
	e.display(`  "events": [`, StyleNone)
	e.opened = true
}

// ShouldEmit records the (kind, host, task) key and reports whether
// this is its first appearance in the document. Duplicate keys are
// suppressed for the lifetime of the emitter.
func (e *Emitter) ShouldEmit(kind string, host string, taskID string) bool {
	key := eventKey{kind: kind, host: host, task: taskID}

	if _, seen := e.seen[key]; seen {
		return false
	}

	e.seen[key] = struct{}{}
	return true
}

// Emit sanitizes and formats payload, then queues it as the pending
// block. A previously pending block is comma-terminated and flushed
// first, so every event except the final one ends with a separating
// comma and the array stays valid JSON without look-ahead.
func (e *Emitter) Emit(payload *Payload, style Style) {
	e.Open()

	sanitized := NewPayload()
	for _, key := range payload.keys {
		sanitized.Set(key, Sanitize(payload.values[key]))
	}

	event, _ := sanitized.Get("event")
	compact := event == "task"

	encoded := encodePayload(sanitized, compact)

	var lines []string
	for _, line := range strings.Split(encoded, "\n") {
		lines = append(lines, "    "+line)
	}

	if e.pending != nil {
		e.flushPending(true)
	}

	e.pending = &pendingBlock{lines: lines, style: style}
}

// FlushPending writes the pending block without a trailing comma. Used
// when the pending block is the final element of the events array.
func (e *Emitter) FlushPending() {
	if e.pending == nil {
		return
	}

	e.flushPending(false)
}

func (e *Emitter) flushPending(withComma bool) {
	block := e.pending
	e.pending = nil

	if withComma && len(block.lines) > 0 {
		block.lines[len(block.lines)-1] += ","
	}

	for _, line := range block.lines {
		e.display(line, block.style)
	}
}

// CloseWithRecap flushes any pending event, closes the events array,
// writes the per-host recap sorted by host name, and closes the
// document. Each host line is styled by its own worst outcome.
func (e *Emitter) CloseWithRecap(stats Stats) {
	e.Open()
	e.FlushPending()

	e.display("  ],", StyleNone)
	e.display(`  "play_recap": {`, StyleTask)

	hosts := make([]string, 0, len(stats))
	for host := range stats {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for i, host := range hosts {
		summary := stats[host]

		encodedHost, _ := marshalValue(host)
		line := fmt.Sprintf("    %s: %s", encodedHost, encodePayload(summary.payload(), true))
		if i < len(hosts)-1 {
			line += ","
		}

		e.display(line, summary.Style())
	}

	e.display("  }", StyleTask)
	e.display("}", StyleNone)
}
