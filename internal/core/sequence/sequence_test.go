package sequence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		num  int64
		want string
	}{
		{"bill", Bills, 1, "B000001"},
		{"bill large", Bills, 123456, "B123456"},
		{"bill overflow keeps digits", Bills, 1234567, "B1234567"},
		{"product", Products, 7, "P0007"},
		{"expense", Expenses, 42, "E0042"},
		{"role", Roles, 1, "R0001"},
		{"user", Users, 10, "U0010"},
		{"zero pad width defaults to 4", Config{Prefix: "X"}, 3, "X0003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.cfg, tt.num))
		})
	}
}

func TestParseNumber(t *testing.T) {
	assert.EqualValues(t, 8, ParseNumber(Bills, "B000008"))
	assert.EqualValues(t, 1234567, ParseNumber(Bills, "B1234567"))
	assert.EqualValues(t, -1, ParseNumber(Bills, "P0001"))
	assert.EqualValues(t, -1, ParseNumber(Bills, "Bxyz"))
	assert.EqualValues(t, -1, ParseNumber(Bills, ""))
}

func TestMockGenerator_SequentialPerFamily(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()

	first, err := gen.Next(ctx, Bills)
	require.NoError(t, err)
	second, err := gen.Next(ctx, Bills)
	require.NoError(t, err)
	product, err := gen.Next(ctx, Products)
	require.NoError(t, err)

	assert.Equal(t, "B000001", first)
	assert.Equal(t, "B000002", second)
	assert.Equal(t, "P0001", product, "families count independently")
}

func TestMockGenerator_SetNext(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()

	require.NoError(t, gen.SetNext(ctx, Bills, 100))

	code, err := gen.Next(ctx, Bills)
	require.NoError(t, err)
	assert.Equal(t, "B000100", code)
}

func TestMockGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()

	const n = 100
	codes := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := gen.Next(ctx, Bills)
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool, n)
	for code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, n)
}
