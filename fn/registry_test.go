package fn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindadb/ldb/fn"
	"github.com/lindadb/ldb/lv"
)

func TestRegistryCallDispatchesToRegisteredFunc(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	reg := fn.NewRegistry()
	reg.Register("double", func(args lv.Tuple) (lv.Tuple, error) {
		return lv.NewTuple(lv.I64(args.At(0).AsI64() * 2)), nil
	})

	result, err := reg.Call(lv.NewCallHolder("double", lv.NewTuple(lv.I64(21))))
	require.NoError(err)
	assert.Equal(int64(42), result.At(0).AsI64())
}

func TestRegistryCallUnregisteredNameErrors(t *testing.T) {
	require := require.New(t)

	reg := fn.NewRegistry()
	_, err := reg.Call(lv.NewCallHolder("missing", lv.NewTuple()))
	require.Error(err)
}

func TestRegistryUnregisterRemovesFunc(t *testing.T) {
	require := require.New(t)

	reg := fn.NewRegistry()
	reg.Register("noop", func(args lv.Tuple) (lv.Tuple, error) { return args, nil })
	reg.Unregister("noop")

	_, err := reg.Call(lv.NewCallHolder("noop", lv.NewTuple()))
	require.Error(err)
}
