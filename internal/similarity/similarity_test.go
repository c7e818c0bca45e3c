package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materia/internal/domain"
)

func newDataset(schema []string, rows ...domain.Material) *domain.Dataset {
	return &domain.Dataset{NameColumn: "nome_material", Schema: schema, Materials: rows}
}

func mat(name string, kv ...float64) domain.Material {
	keys := []string{"tipo", "peso", "resistencia"}
	attrs := make(map[string]float64, len(kv))
	for i, v := range kv {
		attrs[keys[i]] = v
	}
	return domain.Material{Name: name, Attributes: attrs}
}

func sampleDataset() *domain.Dataset {
	return newDataset([]string{"tipo", "peso", "resistencia"},
		mat("Aço", 2, 5, 5),
		mat("Plástico", 1, 1, 2),
		mat("Madeira", 3, 2, 3),
		mat("Vidro", 4, 3, 1),
		mat("Alumínio", 2, 2, 4),
	)
}

func TestRank_EndToEndExample(t *testing.T) {
	ds := newDataset([]string{"tipo", "peso"},
		domain.Material{Name: "Aço", Attributes: map[string]float64{"tipo": 2, "peso": 5}},
		domain.Material{Name: "Plástico", Attributes: map[string]float64{"tipo": 1, "peso": 1}},
	)
	got := Rank(domain.Query{"tipo": 2, "peso": 5}, ds, 3)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Match{Name: "Aço", Similarity: 100}, got[0])
	assert.Equal(t, domain.Match{Name: "Plástico", Similarity: 0}, got[1])
}

func TestRank_AtMostTopKSortedDescending(t *testing.T) {
	ds := sampleDataset()
	queries := []domain.Query{
		{},
		{"tipo": 2},
		{"tipo": 9, "peso": -4, "resistencia": 0.5},
		{"peso": 3, "cor": 7},
	}
	for _, q := range queries {
		got := Rank(q, ds, 3)
		require.Len(t, got, 3)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Similarity, got[i].Similarity)
		}
		for _, m := range got {
			assert.GreaterOrEqual(t, m.Similarity, 0.0)
			assert.LessOrEqual(t, m.Similarity, 100.0)
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	ds := sampleDataset()
	q := domain.Query{"tipo": 2, "peso": 2}
	assert.Equal(t, Rank(q, ds, 3), Rank(q, ds, 3))
}

func TestRank_ExactMatchScoresHundred(t *testing.T) {
	ds := sampleDataset()
	got := Rank(domain.Query{"tipo": 3, "peso": 2, "resistencia": 3}, ds, 3)
	assert.Equal(t, "Madeira", got[0].Name)
	assert.Equal(t, 100.0, got[0].Similarity)
}

func TestRank_TiesKeepDatasetOrder(t *testing.T) {
	ds := newDataset([]string{"tipo"},
		domain.Material{Name: "Far", Attributes: map[string]float64{"tipo": 10}},
		domain.Material{Name: "B", Attributes: map[string]float64{"tipo": 1}},
		domain.Material{Name: "A", Attributes: map[string]float64{"tipo": -1}},
		domain.Material{Name: "C", Attributes: map[string]float64{"tipo": 1}},
	)
	got := Rank(domain.Query{"tipo": 0}, ds, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, 90.0, got[0].Similarity)
}

func TestRank_DegenerateMaxDistance(t *testing.T) {
	single := newDataset([]string{"tipo"},
		domain.Material{Name: "Only", Attributes: map[string]float64{"tipo": 4}},
	)
	got := Rank(domain.Query{"tipo": 4}, single, 3)
	assert.Equal(t, []domain.Match{{Name: "Only", Similarity: 100}}, got)

	same := newDataset([]string{"tipo"},
		domain.Material{Name: "X", Attributes: map[string]float64{"tipo": 1}},
		domain.Material{Name: "Y", Attributes: map[string]float64{"tipo": 1}},
	)
	got = Rank(domain.Query{"tipo": 1}, same, 3)
	assert.Equal(t, []domain.Match{{Name: "X", Similarity: 100}, {Name: "Y", Similarity: 100}}, got)
	for _, m := range got {
		assert.False(t, math.IsNaN(m.Similarity))
	}
}

func TestRank_EmptyDataset(t *testing.T) {
	got := Rank(domain.Query{"tipo": 1}, newDataset([]string{"tipo"}), 3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRank_DefaultTopK(t *testing.T) {
	assert.Len(t, Rank(domain.Query{}, sampleDataset(), 0), DefaultTopK)
	assert.Len(t, Rank(domain.Query{}, sampleDataset(), 5), 5)
	assert.Len(t, Rank(domain.Query{}, sampleDataset(), 50), 5)
}

func TestRank_RoundsToTwoDecimals(t *testing.T) {
	ds := newDataset([]string{"tipo"},
		domain.Material{Name: "A", Attributes: map[string]float64{"tipo": 1}},
		domain.Material{Name: "B", Attributes: map[string]float64{"tipo": 3}},
	)
	got := Rank(domain.Query{"tipo": 0}, ds, 3)
	// 1 - 1/3 = 66.666...
	assert.Equal(t, 66.67, got[0].Similarity)
}

func TestDistances(t *testing.T) {
	ds := newDataset([]string{"tipo", "peso"},
		domain.Material{Name: "A", Attributes: map[string]float64{"tipo": 3, "peso": 4}},
		domain.Material{Name: "B", Attributes: map[string]float64{"tipo": 0, "peso": 0}},
	)
	assert.InDeltaSlice(t, []float64{5, 0}, Distances(domain.Query{}, ds), 1e-12)
	assert.Nil(t, Distances(domain.Query{}, nil))
}

func TestVector_FillsMissingWithZero(t *testing.T) {
	got := Vector(domain.Query{"peso": 2, "extra": 9}, []string{"tipo", "peso"})
	assert.Equal(t, []float64{0, 2}, got)
}

func TestRank_HugeFiniteValuesStayInRange(t *testing.T) {
	tests := []struct {
		name string
		ds   *domain.Dataset
		q    domain.Query
		best string
	}{
		{
			name: "query far outside the dataset",
			ds: newDataset([]string{"tipo", "peso"},
				domain.Material{Name: "Aço", Attributes: map[string]float64{"tipo": 2, "peso": 5}},
				domain.Material{Name: "Plástico", Attributes: map[string]float64{"tipo": 1, "peso": 1}},
			),
			q:    domain.Query{"tipo": 1e200, "peso": 1e200},
			best: "Aço",
		},
		{
			name: "differences beyond float64 range",
			ds: newDataset([]string{"tipo"},
				domain.Material{Name: "High", Attributes: map[string]float64{"tipo": math.MaxFloat64}},
				domain.Material{Name: "Low", Attributes: map[string]float64{"tipo": -math.MaxFloat64}},
				domain.Material{Name: "Zero", Attributes: map[string]float64{"tipo": 0}},
			),
			q:    domain.Query{"tipo": 0},
			best: "Zero",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.q, tt.ds, 3)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.best, got[0].Name)
			for _, m := range got {
				assert.False(t, math.IsNaN(m.Similarity), m.Name)
				assert.GreaterOrEqual(t, m.Similarity, 0.0)
				assert.LessOrEqual(t, m.Similarity, 100.0)
			}
		})
	}
}

func TestRank_ZeroDistanceScoresHundredWithHugeSpread(t *testing.T) {
	ds := newDataset([]string{"tipo"},
		domain.Material{Name: "High", Attributes: map[string]float64{"tipo": math.MaxFloat64}},
		domain.Material{Name: "Low", Attributes: map[string]float64{"tipo": -math.MaxFloat64}},
	)
	got := Rank(domain.Query{"tipo": math.MaxFloat64}, ds, 3)
	assert.Equal(t, []domain.Match{{Name: "High", Similarity: 100}, {Name: "Low", Similarity: 0}}, got)
	assert.True(t, math.IsInf(Distances(domain.Query{"tipo": math.MaxFloat64}, ds)[1], 1))
}
