package generator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	domain "synthgen/internal/core/domain/generator"
)

// minEigenvalue is the floor substituted for a negative eigenvalue when
// repairing a target correlation matrix that is not positive
// semi-definite (spec §4.3 step 5). Eigenvalues already >= 0 are left
// untouched, so a symmetric PD input passes through unchanged (spec §8).
const minEigenvalue = 1e-10

// ApplyCorrelation couples independently-sampled columns into a target
// correlation structure using a Gaussian copula (spec §4.3). It mutates
// ds in place. Unknown keys in edges are ignored — Validate already
// raised a ReferenceWarning for them.
//
// This stage has no randomness of its own: every input is already
// drawn, so it is a synchronization barrier for any parallel sampling
// that ran before it (spec §4.8/§9) — all columns must be present
// before step 1 can run.
func ApplyCorrelation(ds *domain.Dataset, edges []domain.CorrelationEdge) {
	keys := ds.Keys
	n := len(keys)
	t := ds.Rows()
	if n < 2 || t == 0 {
		return
	}
	index := make(map[string]int, n)
	for i, k := range keys {
		index[k] = i
	}

	target := buildTargetMatrix(n, index, edges)
	repaired := repairToPSD(target)
	lower, ok := choleskyLower(repaired)
	if !ok {
		// spec §4.3 step 6 / original's bare except: an unfactorizable
		// matrix leaves the independently-sampled columns untouched.
		return
	}

	z := mat.NewDense(t, n, nil)
	sorted := make([][]float64, n)
	for j, k := range keys {
		col := ds.Columns[k]
		sortedCol := append([]float64(nil), col...)
		sort.Float64s(sortedCol)
		sorted[j] = sortedCol

		ranks := rankOf(col)
		for i := 0; i < t; i++ {
			u := float64(ranks[i]+1) / float64(t+1)
			z.Set(i, j, distuv.UnitNormal.Quantile(u))
		}
	}

	var lt mat.Dense
	lt.CloneFrom(lower.T())
	var zPrime mat.Dense
	zPrime.Mul(z, &lt)

	for j, k := range keys {
		out := make([]float64, t)
		for i := 0; i < t; i++ {
			u := distuv.UnitNormal.CDF(zPrime.At(i, j))
			idx := int(u * float64(t))
			if idx >= t {
				idx = t - 1
			}
			if idx < 0 {
				idx = 0
			}
			out[i] = sorted[j][idx]
		}
		ds.Columns[k] = out
	}
}

// rankOf returns, for each element of xs, its rank among xs (0-based,
// ties broken by original position — spec §4.3 step 1 treats rank
// assignment as an implementation detail of the rank transform).
func rankOf(xs []float64) []int {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	ranks := make([]int, len(xs))
	for rank, i := range idx {
		ranks[i] = rank
	}
	return ranks
}

func buildTargetMatrix(n int, index map[string]int, edges []domain.CorrelationEdge) *mat.SymDense {
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1)
	}
	for _, e := range edges {
		i, ok1 := index[e.SourceKey]
		j, ok2 := index[e.TargetKey]
		if !ok1 || !ok2 || i == j {
			continue
		}
		c := e.Coefficient
		if c > 1 {
			c = 1
		}
		if c < -1 {
			c = -1
		}
		m.SetSym(i, j, c)
	}
	return m
}

// repairToPSD clips negative eigenvalues of m to minEigenvalue
// and rescales the reconstruction back to a unit-diagonal correlation
// matrix (spec §4.3 step 5).
func repairToPSD(m *mat.SymDense) *mat.SymDense {
	n := m.Symmetric()

	var eig mat.EigenSym
	ok := eig.Factorize(m, true)
	if !ok {
		// Fall back to identity; an un-factorizable target is corrupt input.
		id := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			id.SetSym(i, i, 1)
		}
		return id
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	vectors.EigenvectorsSym(&eig)

	clipped := make([]float64, n)
	for i, v := range values {
		if v < 0 {
			v = minEigenvalue
		}
		clipped[i] = v
	}

	// Reconstruct V * diag(clipped) * V^T.
	var scaledV mat.Dense
	scaledV.CloneFrom(&vectors)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			scaledV.Set(i, j, vectors.At(i, j)*clipped[j])
		}
	}
	var recon mat.Dense
	recon.Mul(&scaledV, vectors.T())

	repaired := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			repaired.SetSym(i, j, recon.At(i, j))
		}
	}

	// Rescale to a correlation matrix (unit diagonal).
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = math.Sqrt(repaired.At(i, i))
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := repaired.At(i, j)
			if diag[i] > 0 && diag[j] > 0 {
				v /= diag[i] * diag[j]
			}
			out.SetSym(i, j, v)
		}
	}
	return out
}

// choleskyLower returns the lower-triangular factor L such that
// m = L*L^T, adding a small diagonal loading term and retrying once if
// the exact factorization is numerically singular after rescaling. The
// second return is false if neither attempt factorizes, in which case
// the caller must not use the returned matrix.
func choleskyLower(m *mat.SymDense) (*mat.Dense, bool) {
	n := m.Symmetric()
	var chol mat.Cholesky
	if !chol.Factorize(m) {
		loaded := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				v := m.At(i, j)
				if i == j {
					v += 1e-8
				}
				loaded.SetSym(i, j, v)
			}
		}
		if !chol.Factorize(loaded) {
			return nil, false
		}
	}
	var l mat.TriDense
	chol.LTo(&l)
	var dense mat.Dense
	dense.CloneFrom(&l)
	return &dense, true
}
