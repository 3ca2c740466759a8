package shuffle

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoices_IsPermutation(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	r := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		out := Choices(r, in)
		assert.Len(t, out, len(in))
		assert.ElementsMatch(t, in, out)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, in, "input must not be modified")
}

func TestChoices_KeepsDuplicates(t *testing.T) {
	in := []string{"x", "x", "y"}
	out := Choices(rand.New(rand.NewPCG(3, 4)), in)
	assert.ElementsMatch(t, in, out)
}

func TestChoices_SeededIsDeterministic(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	a := Choices(rand.New(rand.NewPCG(7, 7)), in)
	b := Choices(rand.New(rand.NewPCG(7, 7)), in)
	assert.Equal(t, a, b)
}

func TestChoices_OrderVaries(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	r := rand.New(rand.NewPCG(11, 12))

	first := Choices(r, in)
	varied := false
	for range 20 {
		if !slices.Equal(first, Choices(r, in)) {
			varied = true
			break
		}
	}
	assert.True(t, varied, "20 shuffles of 6 items should not all match")
}

func TestChoices_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Choices(nil, nil))
	assert.Equal(t, []string{"only"}, Choices(nil, []string{"only"}))
}

func TestPick_InRange(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for range 100 {
		i := Pick(r, 3)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 3)
	}
}
