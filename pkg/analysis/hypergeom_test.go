package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Population of 10 with 5 class cases, samples of 4: the pmf is
// {5, 50, 100, 50, 5}/210 for k = 0..4.
func TestHyperBalanced(t *testing.T) {

	// CDF(2) == SF at >=2 == 155/210, ties resolve to the negative CDF.
	got := Hyper(2, 4, 5, 10)
	assert.InDelta(t, -155.0/210.0, got, 1e-12)
}

func TestHyperOverrepresented(t *testing.T) {

	// All four sampled are class cases: P(X >= 4) = 5/210.
	got := Hyper(4, 4, 5, 10)
	assert.InDelta(t, 5.0/210.0, got, 1e-12)
}

func TestHyperUnderrepresented(t *testing.T) {

	// No class case in the sample: P(X <= 0) = 5/210, negative sign.
	got := Hyper(0, 4, 5, 10)
	assert.InDelta(t, -5.0/210.0, got, 1e-12)
}

func TestSurvivalAtTenImpossible(t *testing.T) {

	// A sample of 4 can never contain 10 class cases.
	assert.Equal(t, 0.0, SurvivalAtTen(4, 5, 10))
}

func TestSurvivalAtTenCertain(t *testing.T) {

	// Sampling the whole population when every member is a class case.
	assert.InDelta(t, 1.0, SurvivalAtTen(15, 15, 15), 1e-12)
}

func TestHyperPMFSumsToOne(t *testing.T) {

	sum := 0.0
	for k := 0; k <= 4; k++ {
		sum += hyperPMF(k, 10, 5, 4)
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}
