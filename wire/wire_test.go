package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindadb/ldb/lv"
	"github.com/lindadb/ldb/wire"
)

func TestRoundTripScalarMix(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	tup := lv.NewTuple(
		lv.U16(1),
		lv.I64(-2),
		lv.F32(3.5),
		lv.Str("hi"),
		lv.TypeOf(lv.KindI32),
	)
	encoded := wire.Encode(tup)
	decoded, err := wire.Decode(encoded)
	require.NoError(err)
	assert.Equal(0, lv.CompareTuples(tup, decoded))
}

func TestRoundTripEmptyTuple(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	tup := lv.NewTuple()
	encoded := wire.Encode(tup)
	decoded, err := wire.Decode(encoded)
	require.NoError(err)
	assert.Equal(0, tup.Arity())
	assert.Equal(0, decoded.Arity())
}

func TestRoundTripCallHolder(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	h := lv.NewCallHolder("fib", lv.NewTuple(lv.I32(10)))
	tup := lv.NewTuple(lv.Call(h))
	encoded := wire.Encode(tup)
	decoded, err := wire.Decode(encoded)
	require.NoError(err)
	require.Equal(1, decoded.Arity())
	assert.Equal("fib", decoded.At(0).AsCall().Name())
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	require := require.New(t)
	encoded := wire.Encode(lv.NewTuple(lv.I64(1)))
	encoded[0] = 0xff
	_, err := wire.Decode(encoded)
	require.Error(err)
	var wireErr *lv.InvalidWireError
	require.ErrorAs(err, &wireErr)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	require := require.New(t)
	encoded := wire.Encode(lv.NewTuple(lv.Str("a somewhat longer string value")))
	_, err := wire.Decode(encoded[:len(encoded)-3])
	require.Error(err)
}

func TestRoundTripManyArity(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	values := make([]lv.Value, 50)
	for i := range values {
		values[i] = lv.I64(int64(i))
	}
	tup := lv.NewTuple(values...)
	decoded, err := wire.Decode(wire.Encode(tup))
	require.NoError(err)
	assert.Equal(0, lv.CompareTuples(tup, decoded))
}
