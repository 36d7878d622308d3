package lv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lindadb/ldb/lv"
)

func TestCallHolderOrdersByNameOnly(t *testing.T) {
	assert := assert.New(t)
	a := lv.NewCallHolder("double", lv.NewTuple(lv.I64(1)))
	b := lv.NewCallHolder("double", lv.NewTuple(lv.I64(999)))
	assert.True(lv.Equal(lv.Call(a), lv.Call(b)), "call-holders with the same name compare equal regardless of args")

	c := lv.NewCallHolder("triple", lv.NewTuple(lv.I64(1)))
	assert.False(lv.Equal(lv.Call(a), lv.Call(c)))
}
