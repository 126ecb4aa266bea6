package tnetstring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// releaseRecorder is a Values backend that records released values.
type releaseRecorder struct {
	valueBackend
	released []Value
}

func (r *releaseRecorder) Release(v Value) {
	r.released = append(r.released, v)
}

// pickyBackend rejects dict entries whose key is "reject".
type pickyBackend struct {
	releaseRecorder
}

func (p *pickyBackend) SetDict(dict, key, value Value) (Value, error) {
	if s, ok := key.(String); ok && string(s) == "reject" {
		return nil, errors.New("rejected key")
	}
	return p.valueBackend.SetDict(dict, key, value)
}

func TestRelease_PartialList(t *testing.T) {
	rec := &releaseRecorder{}
	codec := NewCodec[Value](rec)

	_, err := codec.Decode([]byte("12:1:a,1:b,1:x!]"))
	require.ErrorIs(t, err, ErrBrokenListItems)

	require.Len(t, rec.released, 1)
	requireValue(t, List{String("a"), String("b")}, rec.released[0])
}

func TestRelease_DictValueFails(t *testing.T) {
	rec := &releaseRecorder{}
	codec := NewCodec[Value](rec)

	_, err := codec.Decode([]byte("8:1:k,1:x!}"))
	require.ErrorIs(t, err, ErrBrokenDictItems)

	require.Len(t, rec.released, 2)
	requireValue(t, String("k"), rec.released[0])
	requireValue(t, Dict{}, rec.released[1])
}

func TestRelease_KeyWithoutValue(t *testing.T) {
	rec := &releaseRecorder{}
	codec := NewCodec[Value](rec)

	_, err := codec.Decode([]byte("12:1:a,1:1#1:b,}"))
	require.ErrorIs(t, err, ErrBrokenDictItems)

	require.Len(t, rec.released, 2)
	requireValue(t, String("b"), rec.released[0])
	requireValue(t, Dict{{Key: String("a"), Value: Int(1)}}, rec.released[1])
}

func TestRelease_RejectedEntry(t *testing.T) {
	rec := &pickyBackend{}
	codec := NewCodec[Value](rec)

	_, err := codec.Decode([]byte("13:6:reject,1:1#}"))
	require.ErrorIs(t, err, ErrBrokenDictItems)
	assert.Contains(t, err.Error(), "rejected key")

	require.Len(t, rec.released, 3)
	requireValue(t, String("reject"), rec.released[0])
	requireValue(t, Int(1), rec.released[1])
	requireValue(t, Dict{}, rec.released[2])
}

func TestRelease_TrailingData(t *testing.T) {
	rec := &releaseRecorder{}
	codec := NewCodec[Value](rec)

	_, err := codec.Decode([]byte("4:1:a,]junk"))
	require.ErrorIs(t, err, ErrTrailingData)

	require.Len(t, rec.released, 1)
	requireValue(t, List{String("a")}, rec.released[0])
}

func TestRelease_NotCalledOnSuccess(t *testing.T) {
	rec := &releaseRecorder{}
	codec := NewCodec[Value](rec)

	_, err := codec.Decode([]byte("24:5:12345#5:67890#5:xxxxx,]"))
	require.NoError(t, err)
	assert.Empty(t, rec.released)
}
