package access

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/tracepack/types"
)

func TestSeqReader_ReadsBackAPackedEvent(t *testing.T) {
	ev := newEvent(t, 64, 16, 8)
	blob := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	samples := []int16{-1, 2, 300}

	require.NoError(t, ev.c.AddInt32(-42))
	require.NoError(t, ev.c.AddBinary(blob, len(blob)))
	require.NoError(t, ev.c.AddText("héllo\x00ignored"))
	require.NoError(t, AddSlice(ev.c, samples))

	bm, err := ev.c.BeginBufferedArray()
	require.NoError(t, err)
	for _, name := range []string{"a", "bc"} {
		require.NoError(t, ev.c.BeginBuffered())
		require.NoError(t, ev.c.AddText(name))
		require.NoError(t, ev.c.AddBool(len(name) > 1))
		require.NoError(t, ev.c.EndBuffered())
	}
	require.NoError(t, ev.c.EndBufferedArray(bm, 2))
	require.NoError(t, ev.c.AddFloat64(2.25))

	record := types.AppendRecord(nil, ev.finish(t))
	r := NewSeqReader(record)

	i32, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-42), i32)

	b, err := r.Binary()
	require.NoError(t, err)
	assert.Equal(t, blob, b)

	s, err := r.Text()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	n, raw, err := r.Array(2)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	for i, want := range samples {
		assert.Equal(t, want, int16(binary.LittleEndian.Uint16(raw[i*2:])))
	}

	count, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, 2, count)
	for _, want := range []string{"a", "bc"} {
		name, err := r.Text()
		require.NoError(t, err)
		assert.Equal(t, want, name)
		flag, err := r.Bool()
		require.NoError(t, err)
		assert.Equal(t, len(want) > 1, flag)
	}

	f, err := r.Float64()
	require.NoError(t, err)
	assert.Equal(t, 2.25, f)
	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, len(record), r.Pos())
}

func TestSeqReader_ShortRecord(t *testing.T) {
	r := NewSeqReader([]byte{0x05, 0x00, 'a'})

	_, err := r.Binary()
	assert.ErrorIs(t, err, ErrShortRecord)

	r = NewSeqReader([]byte{0x01})
	_, err = r.Uint32()
	assert.ErrorIs(t, err, ErrShortRecord)
}

func TestSeqReader_TextWithoutTerminator(t *testing.T) {
	r := NewSeqReader([]byte{0x02, 0x00, 'a', 0x00})

	_, err := r.Text()
	assert.ErrorIs(t, err, ErrShortRecord)
}
