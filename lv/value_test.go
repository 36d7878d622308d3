package lv_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lindadb/ldb/lv"
)

func TestCompareTagOrder(t *testing.T) {
	assert := assert.New(t)
	assert.True(lv.Compare(lv.I16(1), lv.U16(1)) < 0, "i16 sorts before u16 regardless of payload")
	assert.True(lv.Compare(lv.Str("a"), lv.I64(0)) > 0, "string sorts after any integer kind")
}

func TestComparePayloadOrder(t *testing.T) {
	assert := assert.New(t)
	assert.True(lv.Compare(lv.I64(1), lv.I64(2)) < 0)
	assert.True(lv.Compare(lv.U64(5), lv.U64(5)) == 0)
	assert.True(lv.Compare(lv.Str("abc"), lv.Str("abd")) < 0)
}

func TestCompareFloatTotalOrderNaN(t *testing.T) {
	assert := assert.New(t)
	nan := lv.F64(math.NaN())
	negNaN := lv.F64(math.Float64frombits(math.Float64bits(math.NaN()) | (1 << 63)))
	// The same NaN bit pattern compares equal to itself, per the total
	// order being reflexive; it's distinct NaN encodings (here, opposite
	// sign bits) that must not be conflated.
	assert.True(lv.Equal(nan, nan))
	assert.False(lv.Equal(nan, negNaN))
	assert.NotEqual(0, lv.Compare(nan, lv.F64(math.Inf(1))))
}

func TestCompareFloatTotalOrderSign(t *testing.T) {
	assert := assert.New(t)
	assert.True(lv.Compare(lv.F64(-1.0), lv.F64(1.0)) < 0)
	assert.True(lv.Compare(lv.F64(math.Copysign(0, -1)), lv.F64(0.0)) < 0)
	assert.True(lv.Compare(lv.F64(math.Inf(-1)), lv.F64(math.Inf(1))) < 0)
	assert.True(lv.Compare(lv.F64(-1.0), lv.F64(0.0)) < 0)
}

func TestEqualIsConsistentWithCompare(t *testing.T) {
	assert := assert.New(t)
	a, b := lv.I32(42), lv.I32(42)
	assert.True(lv.Equal(a, b))
	assert.Equal(0, lv.Compare(a, b))
}

func TestHashConsistentWithEqual(t *testing.T) {
	assert := assert.New(t)
	a, b := lv.Str("hello"), lv.Str("hello")
	assert.True(lv.Equal(a, b))
	assert.Equal(lv.Hash(a), lv.Hash(b))
}

func TestTypeWildcardNeverEqualsConcrete(t *testing.T) {
	assert := assert.New(t)
	wc := lv.Type[int32]()
	assert.False(lv.Equal(wc, lv.I32(7)))
	assert.True(wc.IsWildcard())
	assert.Equal(lv.KindI32, wc.RefKind())
}
