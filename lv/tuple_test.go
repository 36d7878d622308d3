package lv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindadb/ldb/lv"
)

func TestTupleArityAndAt(t *testing.T) {
	assert := assert.New(t)
	tup := lv.NewTuple(lv.Str("p"), lv.I64(7))
	assert.Equal(2, tup.Arity())
	assert.True(lv.Equal(lv.Str("p"), tup.At(0)))
	assert.True(lv.Equal(lv.I64(7), tup.At(1)))
}

func TestTupleOutOfRangeIsLogicError(t *testing.T) {
	tup := lv.NewTuple(lv.I64(1))
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*lv.LogicError)
		require.True(t, ok, "expected *lv.LogicError, got %T", r)
	}()
	_ = tup.At(5)
}

func TestTupleSpillBeyondInlineCapacity(t *testing.T) {
	assert := assert.New(t)
	values := make([]lv.Value, 10)
	for i := range values {
		values[i] = lv.I32(int32(i))
	}
	tup := lv.NewTuple(values...)
	assert.Equal(10, tup.Arity())
	for i := range values {
		assert.True(lv.Equal(values[i], tup.At(i)), "position %d", i)
	}
}

func TestCompareTuplesByLengthThenPosition(t *testing.T) {
	assert := assert.New(t)
	short := lv.NewTuple(lv.I64(1))
	long := lv.NewTuple(lv.I64(1), lv.I64(2))
	assert.True(lv.CompareTuples(short, long) < 0)

	a := lv.NewTuple(lv.I64(1), lv.I64(2))
	b := lv.NewTuple(lv.I64(1), lv.I64(3))
	assert.True(lv.CompareTuples(a, b) < 0)
}

func TestTupleCloneIsIndependent(t *testing.T) {
	assert := assert.New(t)
	values := make([]lv.Value, 6)
	for i := range values {
		values[i] = lv.I64(int64(i))
	}
	orig := lv.NewTuple(values...)
	clone := orig.Clone()
	assert.Equal(0, lv.CompareTuples(orig, clone))
}
