package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	assert := assert.New(t)

	seq := Chain(slices.Values([]int{1, 2}), slices.Values([]int{}), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	assert.Empty(slices.Collect(Chain[int]()))

	// Early termination
	var got []int
	for value := range seq {
		got = append(got, value)
		if value == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, got)
}

func TestChain2(t *testing.T) {
	assert := assert.New(t)

	first := map[string]string{"A": "1", "B": "2"}
	second := map[string]string{"B": "x", "C": "3"}

	got := maps.Collect(Chain2(maps.All(first), maps.All(second)))
	assert.Equal(map[string]string{"A": "1", "B": "2", "C": "3"}, got)

	count := 0
	for range Chain2(maps.All(first), maps.All(second)) {
		count++
		break
	}
	assert.Equal(1, count)
}
