package utils

import (
	"testing"

	enc "github.com/named-data/ndnfw/std/encoding"
	"github.com/stretchr/testify/require"
)

var testT *testing.T

func SetT(t *testing.T) {
	testT = t
}

func NoErr[T any](v T, err error) T {
	require.NoError(testT, err)
	return v
}

func Err[T any](_ T, err error) error {
	require.Error(testT, err)
	return err
}

// Name parses a name URI and fails the current test on error.
func Name(s string) enc.Name {
	return NoErr(enc.NameFromStr(s))
}
