package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFirstPageOfTwelve(t *testing.T) {
	meta := New(12, 1, 10)
	require.Equal(t, Meta{TotalItems: 12, ItemCount: 10, ItemsPerPage: 10, TotalPages: 2, CurrentPage: 1}, meta)
}

func TestNewLastPartialPage(t *testing.T) {
	meta := New(12, 2, 10)
	require.Equal(t, 2, meta.ItemCount)
	require.Equal(t, 2, meta.TotalPages)
}

func TestNewEmpty(t *testing.T) {
	meta := New(0, 1, 10)
	require.Equal(t, Meta{TotalItems: 0, ItemCount: 0, ItemsPerPage: 10, TotalPages: 0, CurrentPage: 1}, meta)
}

func TestNewPageBeyondEnd(t *testing.T) {
	meta := New(5, 4, 2)
	require.Equal(t, 0, meta.ItemCount)
	require.Equal(t, 3, meta.TotalPages)
	require.Equal(t, 4, meta.CurrentPage)
}

func TestNewClampsInvalidInput(t *testing.T) {
	meta := New(-3, 0, 0)
	require.Equal(t, int64(0), meta.TotalItems)
	require.Equal(t, 1, meta.CurrentPage)
	require.Equal(t, 1, meta.ItemsPerPage)
	require.Equal(t, 0, meta.TotalPages)
}

func TestNewInvariantHolds(t *testing.T) {
	for total := int64(0); total <= 40; total++ {
		for perPage := 1; perPage <= 7; perPage++ {
			for page := 1; page <= 8; page++ {
				meta := New(total, page, perPage)

				want := total - int64(page-1)*int64(perPage)
				if want < 0 {
					want = 0
				}
				if want > int64(perPage) {
					want = int64(perPage)
				}
				require.Equal(t, int(want), meta.ItemCount, "total=%d page=%d perPage=%d", total, page, perPage)

				pages := int(total) / perPage
				if int(total)%perPage != 0 {
					pages++
				}
				require.Equal(t, pages, meta.TotalPages, "total=%d perPage=%d", total, perPage)
			}
		}
	}
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Offset(1, 10))
	require.Equal(t, 20, Offset(3, 10))
	require.Equal(t, 0, Offset(0, 10))
	require.Equal(t, 1, Offset(2, 0))
}

func TestNewHugePageHasNoItems(t *testing.T) {
	meta := New(3, 1<<62+1, 4)
	require.Equal(t, 0, meta.ItemCount)
	require.Equal(t, 1, meta.TotalPages)
	require.Equal(t, 1<<62+1, meta.CurrentPage)

	meta = New(3, math.MaxInt, math.MaxInt)
	require.Equal(t, 0, meta.ItemCount)
}

func TestOffsetSaturatesOnOverflow(t *testing.T) {
	require.Equal(t, math.MaxInt, Offset(1<<62+1, 4))
	require.Equal(t, math.MaxInt, Offset(math.MaxInt, math.MaxInt))
	require.Equal(t, math.MaxInt64/100*100, Offset(math.MaxInt64/100+1, 100))
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, ClampLimit(0, DefaultLimit))
	require.Equal(t, 25, ClampLimit(25, DefaultLimit))
	require.Equal(t, MaxLimit, ClampLimit(1<<50, DefaultLimit))
}
