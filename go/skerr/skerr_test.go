package skerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentinel = errors.New("root cause")

func TestFmt_MessageAndCallSite(t *testing.T) {
	err := Fmt("oops %d", 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops 42")
	assert.Contains(t, err.Error(), "skerr_test.go:")
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil))
	assert.NoError(t, Wrapf(nil, "ignored"))
}

func TestWrap_ErrorsIsSeesThrough(t *testing.T) {
	err := Wrapf(Wrap(sentinel), "while doing a thing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "while doing a thing")
	assert.Contains(t, err.Error(), "root cause")
}

func TestUnwrap_ReturnsInnermost(t *testing.T) {
	err := Wrap(Wrap(sentinel))
	assert.Equal(t, sentinel, Unwrap(err))

	plain := fmt.Errorf("not wrapped")
	assert.Equal(t, plain, Unwrap(plain))
}
