package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAlignment(t *testing.T) {
	testCases := []struct {
		name  string
		sizes []int
		used  int
	}{
		{name: "aligned sizes", sizes: []int{8, 16, 64}, used: 88},
		{name: "unaligned sizes", sizes: []int{1, 7, 9}, used: 24},
		{name: "zero size", sizes: []int{0, 0}, used: 0},
		{name: "mixed", sizes: []int{3, 8, 100}, used: 120},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(1024)
			require.NoError(t, p.Init())
			for _, size := range tc.sizes {
				buf, err := p.Alloc(size)
				require.NoError(t, err)
				assert.Len(t, buf, size)
			}
			assert.Equal(t, tc.used, p.Used())
			assert.Equal(t, 1024-tc.used, p.Available())
		})
	}
}

func TestAllocExhaustion(t *testing.T) {
	p := New(1024)
	require.NoError(t, p.Init())

	for i := 0; i < 3; i++ {
		_, err := p.Alloc(256)
		require.NoError(t, err)
	}
	assert.Equal(t, 768, p.Used())

	_, err := p.Alloc(256)
	require.NoError(t, err)
	assert.Equal(t, 1024, p.Used())
	assert.Equal(t, 0, p.Available())

	buf, err := p.Alloc(1)
	assert.Equal(t, ErrExhausted, err)
	assert.Nil(t, buf)
	assert.Equal(t, 1024, p.Used())
}

func TestAllocInvalidSize(t *testing.T) {
	p := New(1024)
	require.NoError(t, p.Init())
	_, err := p.Alloc(-1)
	assert.Equal(t, ErrInvalidSize, err)
	assert.Equal(t, 0, p.Used())
}

func TestAllocOversize(t *testing.T) {
	const maxInt = int(^uint(0) >> 1)

	p := New(1024)
	require.NoError(t, p.Init())
	for _, size := range []int{1025, maxInt - 7, maxInt} {
		buf, err := p.Alloc(size)
		assert.Equal(t, ErrExhausted, err)
		assert.Nil(t, buf)
	}
	assert.Equal(t, 0, p.Used())

	// arena-sized request still fits exactly
	_, err := p.Alloc(1024)
	assert.NoError(t, err)
}

func TestAllocationsDoNotOverlap(t *testing.T) {
	p := New(64)
	require.NoError(t, p.Init())

	a, err := p.Alloc(8)
	require.NoError(t, err)
	b, err := p.Alloc(8)
	require.NoError(t, err)

	for i := range a {
		a[i] = 0xaa
	}
	for i := range b {
		b[i] = 0xbb
	}
	for _, v := range a {
		assert.EqualValues(t, 0xaa, v)
	}
}

func TestCleanupResets(t *testing.T) {
	p := New(1024)
	require.NoError(t, p.Init())
	_, err := p.Alloc(500)
	require.NoError(t, err)

	p.Cleanup()
	assert.Equal(t, 0, p.Used())
	// idempotent
	p.Cleanup()
	assert.Equal(t, 0, p.Used())

	// full capacity is usable again
	_, err = p.Alloc(1024)
	assert.NoError(t, err)
}

func TestFreeIsNoOp(t *testing.T) {
	p := New(1024)
	require.NoError(t, p.Init())
	buf, err := p.Alloc(64)
	require.NoError(t, err)
	p.Free(buf)
	assert.Equal(t, 64, p.Used())
}
