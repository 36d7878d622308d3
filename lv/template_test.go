package lv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lindadb/ldb/lv"
)

func TestTemplateMatchLiteral(t *testing.T) {
	assert := assert.New(t)
	tpl := lv.NewTemplate(lv.Str("p"), lv.I64(7))
	tup := lv.NewTuple(lv.Str("p"), lv.I64(7))
	assert.Equal(lv.MatchEqual, tpl.Match(tup))
}

func TestTemplateMatchTypedWildcard(t *testing.T) {
	assert := assert.New(t)
	tpl := lv.NewTemplate(lv.Str("p"), lv.Type[int64]())
	tup := lv.NewTuple(lv.Str("p"), lv.I64(999))
	assert.Equal(lv.MatchEqual, tpl.Match(tup))
}

func TestTemplateMatchWildcardTypeMismatchIsIncomparable(t *testing.T) {
	assert := assert.New(t)
	tpl := lv.NewTemplate(lv.Str("p"), lv.Type[int64]())
	tup := lv.NewTuple(lv.Str("p"), lv.Str("not an int"))
	assert.Equal(lv.MatchIncomparable, tpl.Match(tup))
}

func TestTemplateMatchArityMismatch(t *testing.T) {
	assert := assert.New(t)
	tpl := lv.NewTemplate(lv.Str("p"))
	tup := lv.NewTuple(lv.Str("p"), lv.I64(1))
	assert.Equal(lv.MatchLess, tpl.Match(tup))

	tpl2 := lv.NewTemplate(lv.Str("p"), lv.I64(1))
	tup2 := lv.NewTuple(lv.Str("p"))
	assert.Equal(lv.MatchGreater, tpl2.Match(tup2))
}

func TestTemplateMatchLiteralMismatchPreservesOrder(t *testing.T) {
	assert := assert.New(t)
	tpl := lv.NewTemplate(lv.I64(5))
	lower := lv.NewTuple(lv.I64(3))
	higher := lv.NewTuple(lv.I64(9))
	assert.Equal(lv.MatchGreater, tpl.Match(lower))
	assert.Equal(lv.MatchLess, tpl.Match(higher))
}
