package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"N", "E", "S", "W"}, "E"))
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(-1, 0, 3))
	require.Equal(t, 3, Clamp(4, 0, 3))
	require.Equal(t, 2, Clamp(2, 0, 3))
}
