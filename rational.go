package texpr

import "math"

// gcd returns the greatest common divisor of two non-negative integers.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// reduce brings num/den to lowest terms. The divisor is computed from
// absolute values and is always non-negative, so the signs of both parts are
// preserved as given; in particular a negative denominator stays negative.
func reduce(num, den int64) (int64, int64) {
	a, b := num, den
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	d := gcd(a, b)
	if d == 0 || d == 1 {
		return num, den
	}
	return num / d, den / d
}

// Rationalize finds a rational approximation num/den of x with |x - num/den|
// <= tol and 0 < den <= maxDen, by Stern-Brocot mediant search on the
// fractional part of x. It reports failure when no mediant within the
// denominator bound reaches the tolerance, and for NaN, infinities, and
// values whose whole part does not fit in an int64.
func Rationalize(x float64, maxDen int64, tol float64) (num, den int64, ok bool) {
	if maxDen < 1 || math.IsNaN(x) || math.IsInf(x, 0) || x >= math.MaxInt64 || x <= math.MinInt64 {
		return 0, 0, false
	}
	neg := x < 0
	if neg {
		x = -x
	}
	whole := int64(x)
	frac := x - float64(whole)

	// Bracket the fractional remainder between 0/1 and 1/1 and narrow by
	// mediants. The mediant of two bracket ends is always in lowest terms.
	numL, denL := int64(0), int64(1)
	numR, denR := int64(1), int64(1)
	for {
		numM := numL + numR
		denM := denL + denR
		if denM > maxDen {
			// Fall back to whichever endpoint already satisfies the
			// tolerance; the left endpoint starts at 0/1, covering frac = 0.
			switch {
			case math.Abs(frac-float64(numL)/float64(denL)) <= tol:
				numM, denM = numL, denL
			case math.Abs(frac-float64(numR)/float64(denR)) <= tol:
				numM, denM = numR, denR
			default:
				return 0, 0, false
			}
			return compose(neg, whole, numM, denM)
		}
		m := float64(numM) / float64(denM)
		switch {
		case math.Abs(frac-m) <= tol:
			return compose(neg, whole, numM, denM)
		case m < frac:
			numL, denL = numM, denM
		default:
			numR, denR = numM, denM
		}
	}
}

// compose rebuilds the signed improper fraction from the whole part and the
// fractional approximation.
func compose(neg bool, whole, num, den int64) (int64, int64, bool) {
	n := whole*den + num
	if neg {
		n = -n
	}
	n, d := reduce(n, den)
	return n, d, true
}
