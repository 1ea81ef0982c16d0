package sfoc

import (
	"errors"
	"fmt"
	"math"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrTooFewPoints  = errors.New("sfoc: curve needs at least 2 points")
	ErrDuplicateLoad = errors.New("sfoc: duplicate load point")
	ErrNonFinite     = errors.New("sfoc: non-finite value")
	ErrSingularFit   = errors.New("sfoc: curve fit could not be constructed")
)

// Evaluator returns the specific fuel oil consumption (g/kWh) at a load percentage.
type Evaluator interface {
	SFOC(loadPct float64) (float64, error)
}

// Spline is an interpolating B-spline fitted through the points of an SFOC curve.
//
// With three or more points the spline is quadratic: the knot vector is clamped at the
// first and last load, and its interior knots sit at the midpoints between consecutive
// loads, skipping the first and last midpoint. With exactly two points the degree drops
// to one and the spline is the line through them. Loads outside the sampled range are
// evaluated on the first or last polynomial piece, so the curve extrapolates.
//
// A Spline is immutable after Fit and safe for concurrent use.
type Spline struct {
	degree int
	knots  []float64
	coef   []float64

	minLoad float64
	maxLoad float64
}

var _ Evaluator = (*Spline)(nil)

// Fit builds the interpolating spline for c. Points may be unordered.
func Fit(c model.Curve) (*Spline, error) {
	if len(c) < 2 {
		return nil, ErrTooFewPoints
	}
	pts := c.Sorted()
	n := len(pts)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		if !isFinite(p.LoadPct) || !isFinite(p.SFOC) {
			return nil, fmt.Errorf("%w: point (%v, %v)", ErrNonFinite, p.LoadPct, p.SFOC)
		}
		if i > 0 && p.LoadPct == xs[i-1] {
			return nil, fmt.Errorf("%w: %v%%", ErrDuplicateLoad, p.LoadPct)
		}
		xs[i] = p.LoadPct
		ys[i] = p.SFOC
	}

	k := 2
	if n < 3 {
		k = n - 1
	}
	knots := buildKnots(xs, k)

	// Collocation system: sum_j B_j(x_i) c_j = y_i.
	a := mat.NewDense(n, n, nil)
	for i, x := range xs {
		span := findSpan(knots, n, k, x)
		basis := basisFuncs(knots, span, k, x)
		for j := 0; j <= k; j++ {
			a.Set(i, span-k+j, basis[j])
		}
	}
	var coef mat.VecDense
	if err := coef.SolveVec(a, mat.NewVecDense(n, ys)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularFit, err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = coef.AtVec(i)
		if !isFinite(out[i]) {
			return nil, ErrSingularFit
		}
	}

	return &Spline{
		degree:  k,
		knots:   knots,
		coef:    out,
		minLoad: xs[0],
		maxLoad: xs[n-1],
	}, nil
}

// Evaluate fits c and evaluates it at loadPct.
// Callers evaluating the same curve repeatedly should Fit once and reuse the Spline.
func Evaluate(c model.Curve, loadPct float64) (float64, error) {
	s, err := Fit(c)
	if err != nil {
		return 0, err
	}
	return s.SFOC(loadPct)
}

// SFOC evaluates the spline at loadPct, extrapolating outside the sampled range.
func (s *Spline) SFOC(loadPct float64) (float64, error) {
	if !isFinite(loadPct) {
		return 0, ErrNonFinite
	}
	n := len(s.coef)
	span := findSpan(s.knots, n, s.degree, loadPct)
	basis := basisFuncs(s.knots, span, s.degree, loadPct)
	v := 0.0
	for j := 0; j <= s.degree; j++ {
		v += basis[j] * s.coef[span-s.degree+j]
	}
	if !isFinite(v) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Degree is 2 for curves with three or more points, 1 otherwise.
func (s *Spline) Degree() int { return s.degree }

// Range returns the lowest and highest sampled load.
func (s *Spline) Range() (minLoad, maxLoad float64) { return s.minLoad, s.maxLoad }

func buildKnots(xs []float64, k int) []float64 {
	n := len(xs)
	knots := make([]float64, 0, n+k+1)
	for i := 0; i <= k; i++ {
		knots = append(knots, xs[0])
	}
	switch k {
	case 1:
		knots = append(knots, xs[1:n-1]...)
	case 2:
		for i := 1; i < n-2; i++ {
			knots = append(knots, (xs[i]+xs[i+1])/2)
		}
	}
	for i := 0; i <= k; i++ {
		knots = append(knots, xs[n-1])
	}
	return knots
}

// findSpan returns i in [k, n-1] with knots[i] <= x < knots[i+1]; values outside the
// knot range map onto the first or last span.
func findSpan(knots []float64, n, k int, x float64) int {
	if x >= knots[n] {
		return n - 1
	}
	if x <= knots[k] {
		return k
	}
	for i := k; i < n; i++ {
		if x < knots[i+1] {
			return i
		}
	}
	return n - 1
}

// basisFuncs computes the k+1 non-zero basis functions of span i at x (Cox-de Boor,
// triangular form). Outside the span it yields the polynomial continuation.
func basisFuncs(knots []float64, i, k int, x float64) []float64 {
	basis := make([]float64, k+1)
	left := make([]float64, k+1)
	right := make([]float64, k+1)
	basis[0] = 1
	for j := 1; j <= k; j++ {
		left[j] = x - knots[i+1-j]
		right[j] = knots[i+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := basis[r] / (right[r+1] + left[j-r])
			basis[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		basis[j] = saved
	}
	return basis
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
