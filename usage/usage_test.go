package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/tracepack/access"
	"github.com/quickwritereader/tracepack/cfg"
	"github.com/quickwritereader/tracepack/emit"
	"github.com/quickwritereader/tracepack/packable"
	"github.com/quickwritereader/tracepack/types"
)

const testJson = `{"meta":{"version":"1.0.0","author":"Copilot","timestamp":"2025-12-15T11:21:00Z"},"users":[{"id":1,"name":"Alice","roles":["admin","editor","viewer"],"settings":{"theme":"dark","notifications":true}},{"id":2,"name":"Bob","roles":["viewer"],"settings":{"theme":"light","notifications":false}}],"data":{"matrix":[[1,2,3],[4,5,6]],"nested":{"alpha":{"beta":{"delta":"deep value","epsilon":[true,false,null,"string",12345]}}}}}`

// DecodeToGenericMap unmarshals a JSON blob into map[string]interface{}.
func DecodeToGenericMap(data []byte) (map[string]interface{}, error) {
	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	obj, ok := root.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected JSON object at root, got %T", root)
	}

	return obj, nil
}

func TestUsage_GenericJSONBecomesOneBufferedDescriptor(t *testing.T) {
	obj, err := DecodeToGenericMap([]byte(testJson))
	require.NoError(t, err)

	field, err := packable.PackAny(obj)
	require.NoError(t, err)

	var descCount int
	sink := &emit.RecordSink{}
	counting := emit.SinkFunc(func(ctx context.Context, name string, descs []types.Descriptor) error {
		descCount = len(descs)
		return sink.WriteEvent(ctx, name, descs)
	})

	e, err := emit.NewEmitter(counting, cfg.Default().Limits)
	require.NoError(t, err)
	require.NoError(t, e.Write(context.Background(), "document", field))

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 1, descCount, "a top-level composite leaves as one pinned blob")

	fmt.Fprintln(os.Stdout, "Minified Json size:", len(testJson),
		"\nPacked record size:", len(records[0].Payload))

	r := access.NewSeqReader(records[0].Payload)
	count, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	key, err := r.Text()
	require.NoError(t, err)
	assert.Equal(t, "data", key, "keys are packed in sorted order")
}

func TestUsage_ManualCollectorLifecycle(t *testing.T) {
	var scratch [32]byte
	var descs [4]types.Descriptor
	var pins [2]access.Pin

	c := access.GetCollector()
	defer access.ReleaseCollector(c)

	require.NoError(t, c.Enable(scratch[:], descs[:], pins[:]))
	require.NoError(t, c.AddUint32(7))
	require.NoError(t, c.AddText("ok"))
	n, err := c.Finish()
	require.NoError(t, err)

	// the external write happens here, then pins are released
	record := types.AppendRecord(nil, descs[:n])
	access.ReleasePins(pins[:])
	c.Disable()

	assert.Equal(t, []byte{7, 0, 0, 0, 6, 0, 'o', 0, 'k', 0, 0, 0}, record)
}
