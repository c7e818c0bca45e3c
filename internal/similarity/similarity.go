// Package similarity ranks reference materials against a query by
// normalized Euclidean distance.
package similarity

import (
	"math"
	"sort"

	"materia/internal/domain"
)

// DefaultTopK is the number of matches returned when the caller asks for none.
const DefaultTopK = 3

// Rank scores every material in ds against q and returns the topK best,
// highest similarity first. Attributes missing from q count as 0 and keys
// outside the schema are ignored. Equal scores keep dataset order.
func Rank(q domain.Query, ds *domain.Dataset, topK int) []domain.Match {
	if topK <= 0 {
		topK = DefaultTopK
	}
	dists := halfDistances(q, ds)
	if len(dists) == 0 {
		return []domain.Match{}
	}
	maxDist := 0.0
	for _, d := range dists {
		if d > maxDist {
			maxDist = d
		}
	}
	matches := make([]domain.Match, len(dists))
	for i, d := range dists {
		matches[i] = domain.Match{Name: ds.Materials[i].Name, Similarity: score(d, maxDist)}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK]
}

// Distances returns the Euclidean distance from q to each material, in
// dataset order. Distances beyond the float64 range are +Inf.
func Distances(q domain.Query, ds *domain.Dataset) []float64 {
	out := halfDistances(q, ds)
	for i := range out {
		out[i] *= 2
	}
	return out
}

// halfDistances returns half of each distance. Halving every component keeps
// the result finite for any finite inputs; ranking only uses ratios.
func halfDistances(q domain.Query, ds *domain.Dataset) []float64 {
	if ds == nil {
		return nil
	}
	qv := Vector(q, ds.Schema)
	out := make([]float64, ds.Len())
	for i := range ds.Materials {
		out[i] = halfEuclidean(ds.Vector(i), qv)
	}
	return out
}

// Vector lays q out in schema order, filling absent attributes with 0.
func Vector(q domain.Query, schema []string) []float64 {
	vec := make([]float64, len(schema))
	for i, col := range schema {
		vec[i] = q[col]
	}
	return vec
}

// score maps a distance to a 0..100 percentage. A zero maxDist means every
// material is equally close, so all of them score 100.
func score(d, maxDist float64) float64 {
	if maxDist == 0 {
		return 100
	}
	s := (1 - d/maxDist) * 100
	if s < 0 {
		s = 0
	}
	return round2(s)
}

func halfEuclidean(a, b []float64) float64 {
	acc := 0.0
	for i := range a {
		acc = math.Hypot(acc, a[i]/2-b[i]/2)
	}
	return acc
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
