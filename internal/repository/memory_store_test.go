package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_memoryStore(t *testing.T) {
	store := newMemoryStore(func(s []string) []string {
		return append([]string{}, s...)
	})

	_, ok := store.get("a")
	require.False(t, ok)

	in := []string{"x"}
	store.put("b", in)
	store.put("a", []string{"y"})
	in[0] = "mutated"

	got, ok := store.get("b")
	require.True(t, ok)
	require.Equal(t, []string{"x"}, got)

	got[0] = "mutated again"
	again, _ := store.get("b")
	require.Equal(t, []string{"x"}, again)

	require.Equal(t, [][]string{{"y"}, {"x"}}, store.listAll())

	store.delete("a")
	require.Len(t, store.listAll(), 1)
}
