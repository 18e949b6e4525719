package valuation

import (
	"math"
	"testing"
)

func TestEstimateWeightAndValue(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		a := EstimateWeightAndValue("5 garrafas PET e 2 caixas de leite")
		b := EstimateWeightAndValue("5 garrafas PET e 2 caixas de leite")
		if a != b {
			t.Fatalf("same description produced different estimates: %+v vs %+v", a, b)
		}
	})

	t.Run("ignores case and surrounding space", func(t *testing.T) {
		a := EstimateWeightAndValue("Garrafas PET")
		b := EstimateWeightAndValue("  garrafas pet ")
		if a != b {
			t.Fatalf("normalization failed: %+v vs %+v", a, b)
		}
	})

	t.Run("weight stays inside the estimate range", func(t *testing.T) {
		for _, desc := range []string{
			"garrafas PET", "latas de alumínio", "vidro", "papelão",
			"óleo de cozinha usado", "a", "uma sacola bem cheia de recicláveis",
		} {
			est := EstimateWeightAndValue(desc)
			if est.Weight < 1.5 || est.Weight >= 6.5 {
				t.Errorf("description %q: weight %v out of range", desc, est.Weight)
			}
		}
	})

	t.Run("value is the weight at the flat rate", func(t *testing.T) {
		est := EstimateWeightAndValue("latas de alumínio")
		want := int64(math.Round(est.Weight * PricePerKg))
		if est.Value != want {
			t.Errorf("expected value %d, got %d", want, est.Value)
		}
	})

	t.Run("blank description falls back to the default", func(t *testing.T) {
		est := EstimateWeightAndValue("   ")
		if est.Weight != 2.5 {
			t.Errorf("expected fallback weight 2.5, got %v", est.Weight)
		}
		if est.Value != ValueFor(2.5) {
			t.Errorf("expected fallback value %d, got %d", ValueFor(2.5), est.Value)
		}
		if est.Justification != "default estimate applied" {
			t.Errorf("unexpected justification %q", est.Justification)
		}
	})
}

func TestValueFor(t *testing.T) {
	cases := []struct {
		weight float64
		want   int64
	}{
		{1.0, 280},
		{2.5, 700},
		{0.001, 0},
		{0.002, 1},
		{3.333, 933},
	}
	for _, tc := range cases {
		if got := ValueFor(tc.weight); got != tc.want {
			t.Errorf("ValueFor(%v) = %d, want %d", tc.weight, got, tc.want)
		}
	}
}
