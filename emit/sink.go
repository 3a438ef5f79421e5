package emit

import (
	"context"
	"io"
	"sync"

	goccyjson "github.com/goccy/go-json"

	"github.com/quickwritereader/tracepack/types"
)

// Sink is the event-write primitive. It must copy or stream every byte the
// descriptors reference before returning: the memory is unpinned and reused
// right after.
type Sink interface {
	WriteEvent(ctx context.Context, name string, descs []types.Descriptor) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, name string, descs []types.Descriptor) error

func (f SinkFunc) WriteEvent(ctx context.Context, name string, descs []types.Descriptor) error {
	return f(ctx, name, descs)
}

// Record is one event as a RecordSink stored it.
type Record struct {
	Name    string
	Payload []byte
}

// RecordSink concatenates each event's descriptors into one record and keeps
// it in memory.
type RecordSink struct {
	mu      sync.Mutex
	records []Record
}

func (s *RecordSink) WriteEvent(ctx context.Context, name string, descs []types.Descriptor) error {
	payload := types.AppendRecord(make([]byte, 0, types.TotalSize(descs)), descs)
	s.mu.Lock()
	s.records = append(s.records, Record{Name: name, Payload: payload})
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the stored records.
func (s *RecordSink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Reset drops the stored records.
func (s *RecordSink) Reset() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}

type eventLine struct {
	Seq         uint64 `json:"seq"`
	Name        string `json:"name"`
	Descriptors []int  `json:"descriptors"`
	Size        int    `json:"size"`
	Payload     []byte `json:"payload"`
}

// JSONLinesSink writes one JSON object per event to w: the descriptor sizes
// and the base64 record. Meant for traces and debugging.
type JSONLinesSink struct {
	mu  sync.Mutex
	enc *goccyjson.Encoder
	seq uint64
}

func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{enc: goccyjson.NewEncoder(w)}
}

func (s *JSONLinesSink) WriteEvent(ctx context.Context, name string, descs []types.Descriptor) error {
	line := eventLine{
		Name:        name,
		Descriptors: make([]int, len(descs)),
		Size:        types.TotalSize(descs),
	}
	for i, d := range descs {
		line.Descriptors[i] = d.Size
	}
	line.Payload = types.AppendRecord(make([]byte, 0, line.Size), descs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	line.Seq = s.seq
	return s.enc.EncodeContext(ctx, line)
}
