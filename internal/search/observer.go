package search

import (
	"fmt"
	"io"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

// Snapshot of a node taken when it is reported. ChildCount is the number of
// children the node had at that moment, which is non-zero for the second node
// of a dependency pair that extended before being reported.
type Event struct {
	ID         derive.NodeID
	Type       derive.NodeType
	Op         derive.Operation
	Depth      int
	ChildCount int
}

// [<type>, (<start>, <end>, <prev>, <cur>), <depth>, <childCount>]
func (e Event) String() string {
	return fmt.Sprintf("[%s, %s, %d, %d]", e.Type, e.Op, e.Depth, e.ChildCount)
}

// Receives every created node in creation order. Observers run on the search
// goroutine and must not retain the store.
type Observer interface {
	Observe(e Event)
}

type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Collects events in memory
type Recorder struct {
	Events []Event
}

func (r *Recorder) Observe(e Event) {
	r.Events = append(r.Events, e)
}

// Events formatted as log lines
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Events))
	for i, e := range r.Events {
		lines[i] = e.String()
	}
	return lines
}

// Writes one line per event; the first write error is kept and later events
// are dropped
type LogObserver struct {
	w   io.Writer
	err error
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (l *LogObserver) Observe(e Event) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintln(l.w, e)
}

func (l *LogObserver) Err() error {
	return l.err
}
