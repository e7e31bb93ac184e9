package clinic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, 2, 10)
	require.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, page)
	require.Equal(t, 25, meta.TotalCount)
	require.Equal(t, 3, meta.TotalPages)
	require.True(t, meta.HasNextPage)
	require.True(t, meta.HasPreviousPage)

	page, meta = Paginate(items, 3, 10)
	require.Len(t, page, 5)
	require.False(t, meta.HasNextPage)
}

func TestPaginateDefaults(t *testing.T) {
	items := make([]string, 12)

	page, meta := Paginate(items, 0, 0)
	require.Len(t, page, DefaultPageSize)
	require.Equal(t, DefaultPage, meta.CurrentPage)
	require.Equal(t, DefaultPageSize, meta.PageSize)
}

func TestPaginatePastEnd(t *testing.T) {
	items := []int{1, 2, 3}

	page, meta := Paginate(items, 5, 10)
	require.Empty(t, page)
	require.Equal(t, 3, meta.TotalCount)
	require.False(t, meta.HasNextPage)
}

func TestPaginateEmpty(t *testing.T) {
	page, meta := Paginate([]int(nil), 1, 10)
	require.Empty(t, page)
	require.Zero(t, meta.TotalCount)
	require.Zero(t, meta.TotalPages)
	require.False(t, meta.HasPreviousPage)
}

func TestParseClock(t *testing.T) {
	d, err := ParseClock("09:30")
	require.NoError(t, err)
	require.Equal(t, "09:30", FormatClock(d))

	d, err = ParseClock("14:15:30")
	require.NoError(t, err)
	require.Equal(t, "14:16", FormatClock(d))

	_, err = ParseClock("25:00")
	require.Error(t, err)
}
