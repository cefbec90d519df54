package diagnosis

import (
	"reflect"
	"slices"
	"testing"

	"sst_portal_backend/internal/catalog"
)

// allProfiles enumerates every segment (plus blank and unknown), every band
// (plus blank and unknown) and every combination of the three hazard flags.
func allProfiles() []Profile {
	segments := append(catalog.Segments(), "", "Pesca")
	bands := []catalog.HeadcountBand{"", "1000+"}
	for _, b := range catalog.HeadcountBands() {
		bands = append(bands, b.Value)
	}

	var out []Profile
	for _, s := range segments {
		for _, b := range bands {
			for flags := 0; flags < 8; flags++ {
				out = append(out, Profile{
					CompanyName:            "ACME",
					Segment:                s,
					HeadcountBand:          b,
					HasMachinery:           flags&1 != 0,
					HasHazardousAgents:     flags&2 != 0,
					HasDangerousConditions: flags&4 != 0,
				})
			}
		}
	}
	return out
}

func TestEvaluate_ConstructionWithMachinery(t *testing.T) {
	d := Evaluate(Profile{
		Segment:       catalog.SegmentConstruction,
		HeadcountBand: catalog.Band100To249,
		HasMachinery:  true,
	})

	want := []catalog.ObligationCode{catalog.NR01, catalog.NR07, catalog.NR12, catalog.NR18}
	if got := d.Codes(); !slices.Equal(got, want) {
		t.Fatalf("expected obligations %v, got %v", want, got)
	}
	if len(d.ServiceBundle) != BaseBundleSize {
		t.Fatalf("expected base bundle of %d lines, got %d", BaseBundleSize, len(d.ServiceBundle))
	}
	if d.Price.Kind != PriceQuoted {
		t.Fatalf("expected quoted price, got %s", d.Price.Kind)
	}
	if d.Price.Monthly != "R$ 1.800,00 a R$ 2.500,00" || d.Price.Setup != "R$ 3.000,00" {
		t.Fatalf("unexpected 100-249 price: %+v", d.Price)
	}
}

func TestEvaluate_AllRulesFire(t *testing.T) {
	d := Evaluate(Profile{
		Segment:                catalog.SegmentElectrical,
		HasMachinery:           true,
		HasHazardousAgents:     true,
		HasDangerousConditions: true,
	})

	want := []catalog.ObligationCode{catalog.NR01, catalog.NR07, catalog.NR12, catalog.NR15, catalog.NR16, catalog.NR10}
	if got := d.Codes(); !slices.Equal(got, want) {
		t.Fatalf("expected obligations %v, got %v", want, got)
	}
	if len(d.ServiceBundle) != BaseBundleSize+2 {
		t.Fatalf("expected two add-ons, got %d lines", len(d.ServiceBundle))
	}
	if d.ServiceBundle[BaseBundleSize].Name != "Laudo de Insalubridade" || d.ServiceBundle[BaseBundleSize+1].Name != "Laudo de Periculosidade" {
		t.Fatalf("unexpected add-on order: %+v", d.ServiceBundle[BaseBundleSize:])
	}
}

func TestEvaluate_UniversalAndConditionalObligations(t *testing.T) {
	for _, p := range allProfiles() {
		codes := Evaluate(p).Codes()

		if len(codes) < 2 || codes[0] != catalog.NR01 || codes[1] != catalog.NR07 {
			t.Fatalf("profile %+v: universal obligations missing or out of order: %v", p, codes)
		}

		triggers := map[catalog.ObligationCode]bool{
			catalog.NR12: p.HasMachinery,
			catalog.NR15: p.HasHazardousAgents,
			catalog.NR16: p.HasDangerousConditions,
			catalog.NR18: p.Segment == catalog.SegmentConstruction,
			catalog.NR10: p.Segment == catalog.SegmentElectrical,
		}
		for code, triggered := range triggers {
			if got := slices.Contains(codes, code); got != triggered {
				t.Fatalf("profile %+v: %s present=%v, want %v", p, code, got, triggered)
			}
		}

		seen := map[catalog.ObligationCode]bool{}
		for _, c := range codes {
			if seen[c] {
				t.Fatalf("profile %+v: duplicate obligation %s", p, c)
			}
			seen[c] = true
		}
	}
}

func TestEvaluate_BundleSize(t *testing.T) {
	for _, p := range allProfiles() {
		want := BaseBundleSize
		if p.HasHazardousAgents {
			want++
		}
		if p.HasDangerousConditions {
			want++
		}
		if got := len(Evaluate(p).ServiceBundle); got != want {
			t.Fatalf("profile %+v: expected bundle size %d, got %d", p, want, got)
		}
	}
}

func TestEvaluate_MachineryDoesNotChangeBundle(t *testing.T) {
	without := Evaluate(Profile{HeadcountBand: catalog.Band1To19})
	with := Evaluate(Profile{HeadcountBand: catalog.Band1To19, HasMachinery: true})

	if !reflect.DeepEqual(without.ServiceBundle, with.ServiceBundle) {
		t.Fatalf("machinery changed the bundle: %v vs %v", without.ServiceBundle, with.ServiceBundle)
	}
	if len(with.Obligations) != len(without.Obligations)+1 {
		t.Fatalf("machinery should add exactly one obligation")
	}
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	for _, p := range allProfiles() {
		first := Evaluate(p)
		second := Evaluate(p)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("profile %+v: evaluations differ", p)
		}
	}
}

func TestEvaluate_ResultsDoNotShareState(t *testing.T) {
	p := Profile{HasHazardousAgents: true}
	first := Evaluate(p)
	first.Obligations[0].Name = "mutated"
	first.ServiceBundle[0].Name = "mutated"

	second := Evaluate(p)
	if second.Obligations[0].Name == "mutated" || second.ServiceBundle[0].Name == "mutated" {
		t.Fatal("mutating one diagnosis leaked into the next")
	}
}

func TestEvaluate_CarriesFollowUpText(t *testing.T) {
	d := Evaluate(Profile{})
	if d.LeadTime != "30 a 45 dias úteis" {
		t.Fatalf("unexpected lead time %q", d.LeadTime)
	}
	if d.Note == "" {
		t.Fatal("expected technical visit note")
	}
}

func TestMissingFields(t *testing.T) {
	p := Profile{
		ContactName: "Ana",
		Email:       "ana@example.com",
		Phone:       "   ",
		CompanyName: "ACME",
		City:        "Salvador",
		Segment:     catalog.SegmentMining,
	}

	want := []string{"phone", "cnpj", "headcountBand"}
	if got := p.MissingFields(); !slices.Equal(got, want) {
		t.Fatalf("expected missing %v, got %v", want, got)
	}
}

func TestEvaluate_RepeatedCodeKeepsFirstMatch(t *testing.T) {
	original := rules
	t.Cleanup(func() { rules = original })

	// NR-12 now fires ahead of the universal norms and again at the end.
	rules = append([]rule{{always, catalog.NR12}}, slices.Clone(original)...)
	rules = append(rules, rule{always, catalog.NR07})

	got := Evaluate(Profile{Segment: catalog.SegmentMetallurgy, HasMachinery: true}).Codes()
	want := []catalog.ObligationCode{catalog.NR12, catalog.NR01, catalog.NR07}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
