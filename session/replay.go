package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/rendertree/parse"
)

// Event kinds of an event log.
const (
	JoinEvent = "join"
	DiffEvent = "diff"
	DropEvent = "drop"
)

// Event is one line of an event log. The payload of a drop event is the
// array of dropped component ids.
type Event struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

const maxEventSize = 64 << 20

// Replay feeds the newline delimited events read from r to s, in order.
// Blank lines are skipped. It stops at the first failing event, reporting
// its line number, or when ctx is done.
func (s *Session) Replay(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxEventSize)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		if err := s.apply(sc.Bytes()); err != nil {
			return fmt.Errorf("event on line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func (s *Session) apply(d []byte) error {
	ev := &Event{}
	if err := json.Unmarshal(d, ev); err != nil {
		return fmt.Errorf("%w: %w", parse.ErrParse, err)
	}
	switch ev.Event {
	case JoinEvent, DiffEvent:
		v, err := parse.Parse(ev.Payload)
		if err != nil {
			return err
		}
		if ev.Event == JoinEvent {
			_, err = s.Join(v)
		} else {
			_, err = s.Diff(v)
		}
		return err
	case DropEvent:
		var cids []int
		if err := json.Unmarshal(ev.Payload, &cids); err != nil {
			return fmt.Errorf("%w: drop payload: %w", parse.ErrDecode, err)
		}
		return s.DropComponents(cids...)
	default:
		return fmt.Errorf("unknown event %q", ev.Event)
	}
}
