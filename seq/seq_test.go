package seq

import (
	"cmp"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, 0, Resolve(0, 5))
	assert.Equal(t, 3, Resolve(3, 5))
	assert.Equal(t, 5, Resolve(9, 5))
	assert.Equal(t, 4, Resolve(-1, 5))
	assert.Equal(t, 0, Resolve(-9, 5))
	assert.Equal(t, 0, Resolve(-1, 0))
}

func TestPushPop(t *testing.T) {
	t.Run("push returns new length", func(t *testing.T) {
		s, n := Push([]int{1, 2, 3}, 4)
		assert.Equal(t, 4, n)
		assert.Empty(t, gocmp.Diff([]int{1, 2, 3, 4}, s))

		s, n = Push(s, 5, 6)
		assert.Equal(t, 6, n)
		assert.Empty(t, gocmp.Diff([]int{1, 2, 3, 4, 5, 6}, s))
	})

	t.Run("pop on empty is absent", func(t *testing.T) {
		s, v, ok := Pop([]string{})
		assert.False(t, ok)
		assert.Equal(t, "", v)
		assert.Empty(t, s)
	})

	t.Run("pop removes last", func(t *testing.T) {
		s, v, ok := Pop([]int{1, 2, 3})
		assert.True(t, ok)
		assert.Equal(t, 3, v)
		assert.Empty(t, gocmp.Diff([]int{1, 2}, s))
	})
}

func TestShiftUnshift(t *testing.T) {
	s, v, ok := Shift([]int{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Empty(t, gocmp.Diff([]int{2, 3}, s))

	_, _, ok = Shift[int](nil)
	assert.False(t, ok)

	s, n := Unshift(s, 7, 8)
	assert.Equal(t, 4, n)
	assert.Empty(t, gocmp.Diff([]int{7, 8, 2, 3}, s))
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		deleteCount int
		items       []int
		want        []int
		removed     []int
	}{
		{"remove middle", 1, 2, nil, []int{1, 4, 5}, []int{2, 3}},
		{"insert only", 2, 0, []int{9}, []int{1, 2, 9, 3, 4, 5}, []int{}},
		{"replace", 0, 1, []int{7, 8}, []int{7, 8, 2, 3, 4, 5}, []int{1}},
		{"negative start", -2, 1, nil, []int{1, 2, 3, 5}, []int{4}},
		{"count past end", 3, 10, nil, []int{1, 2, 3}, []int{4, 5}},
		{"start past end", 10, 1, []int{6}, []int{1, 2, 3, 4, 5, 6}, []int{}},
		{"negative count", 1, -3, nil, []int{1, 2, 3, 4, 5}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, removed := Splice([]int{1, 2, 3, 4, 5}, tt.start, tt.deleteCount, tt.items...)
			assert.Empty(t, gocmp.Diff(tt.want, s))
			assert.Empty(t, gocmp.Diff(tt.removed, removed))
		})
	}
}

func TestSortReverse(t *testing.T) {
	type pair struct {
		key, order int
	}

	s := []pair{{2, 0}, {1, 1}, {2, 2}, {1, 3}}
	Sort(s, func(a, b pair) int { return cmp.Compare(a.key, b.key) })
	assert.Equal(t, []pair{{1, 1}, {1, 3}, {2, 0}, {2, 2}}, s)

	r := Reverse([]int{1, 2, 3})
	assert.Equal(t, []int{3, 2, 1}, r)
}

func TestFill(t *testing.T) {
	assert.Equal(t, []int{0, 0, 0}, Fill([]int{1, 2, 3}, 0))
	assert.Equal(t, []int{1, 0, 0}, Fill([]int{1, 2, 3}, 0, 1))
	assert.Equal(t, []int{1, 0, 3}, Fill([]int{1, 2, 3}, 0, 1, 2))
	assert.Equal(t, []int{1, 2, 0}, Fill([]int{1, 2, 3}, 0, -1))
	assert.Equal(t, []int{1, 2, 3}, Fill([]int{1, 2, 3}, 0, 2, 1))
}

func TestCopyWithin(t *testing.T) {
	assert.Equal(t, []int{4, 5, 3, 4, 5}, CopyWithin([]int{1, 2, 3, 4, 5}, 0, 3))
	assert.Equal(t, []int{4, 2, 3, 4, 5}, CopyWithin([]int{1, 2, 3, 4, 5}, 0, 3, 4))
	assert.Equal(t, []int{1, 2, 3, 4, 1}, CopyWithin([]int{1, 2, 3, 4, 5}, -1))
	assert.Equal(t, []int{1, 1, 2, 3, 4}, CopyWithin([]int{1, 2, 3, 4, 5}, 1))
	assert.Equal(t, []int{1, 2, 3}, CopyWithin([]int{1, 2, 3}, 5))
}
