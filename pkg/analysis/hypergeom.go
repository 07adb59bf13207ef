// Hypergeometric probabilities for occurrence counts. The population
// is the genome set, the "class" is carriers of one genetic element,
// and the sample is carriers of the other.

package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// hyperPMF is P(X = k) drawing n from a population of N with K class
// cases. Zero outside the support.
func hyperPMF(k, nPop, kCases, nSample int) float64 {
	if k < 0 || k > nSample || k > kCases || nSample-k > nPop-kCases {
		return 0.0
	}
	logp := combin.LogGeneralizedBinomial(float64(kCases), float64(k)) +
		combin.LogGeneralizedBinomial(float64(nPop-kCases), float64(nSample-k)) -
		combin.LogGeneralizedBinomial(float64(nPop), float64(nSample))
	return math.Exp(logp)
}

// hyperCDF is P(X <= x).
func hyperCDF(x, nPop, kCases, nSample int) float64 {
	lo := nSample + kCases - nPop
	if lo < 0 {
		lo = 0
	}
	hi := nSample
	if kCases < hi {
		hi = kCases
	}
	if x >= hi {
		return 1.0
	}
	prob := 0.0
	for k := lo; k <= x; k++ {
		prob += hyperPMF(k, nPop, kCases, nSample)
	}
	return prob
}

// hyperSF is P(X > x), summed directly rather than via 1-CDF so small
// tails keep their precision.
func hyperSF(x, nPop, kCases, nSample int) float64 {
	lo := nSample + kCases - nPop
	if lo < 0 {
		lo = 0
	}
	if x+1 > lo {
		lo = x + 1
	}
	hi := nSample
	if kCases < hi {
		hi = kCases
	}
	prob := 0.0
	for k := lo; k <= hi; k++ {
		prob += hyperPMF(k, nPop, kCases, nSample)
	}
	return prob
}

// SurvivalAtTen is the probability of observing 10 or more class cases
// in a sample of sampleSize, given totalCases class cases in a
// population of totalSize.
func SurvivalAtTen(sampleSize, totalCases, totalSize int) float64 {
	return hyperSF(10-1, totalSize, totalCases, sampleSize)
}

// Hyper returns the hypergeometric CDF or SF for sampleCases
// occurrences, whichever is lower: negative for the CDF
// (under-representation), positive for the SF (over-representation).
func Hyper(sampleCases, sampleSize, totalCases, totalSize int) float64 {
	cdf := hyperCDF(sampleCases, totalSize, totalCases, sampleSize)
	sf := hyperSF(sampleCases-1, totalSize, totalCases, sampleSize)
	if cdf <= sf {
		return -cdf
	}
	return sf
}
