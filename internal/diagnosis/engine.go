package diagnosis

import "sst_portal_backend/internal/catalog"

const (
	leadTime      = "30 a 45 dias úteis"
	technicalNote = "Outras NRs podem ser avaliadas em visita técnica."
)

// BundleItem is one line of the recommended service bundle.
type BundleItem struct {
	Name  string `json:"name"`
	AddOn bool   `json:"addOn"`
}

// Diagnosis is the result of evaluating a profile. It is replaced wholesale
// whenever the profile changes.
type Diagnosis struct {
	Obligations   []catalog.Obligation  `json:"obligations"`
	ServiceBundle []BundleItem          `json:"serviceBundle"`
	Price         PriceEstimate         `json:"price"`
	HeadcountBand catalog.HeadcountBand `json:"headcountBand,omitempty"`
	LeadTime      string                `json:"leadTime"`
	Note          string                `json:"note"`
}

// Codes returns the obligation codes in evaluation order.
func (d Diagnosis) Codes() []catalog.ObligationCode {
	codes := make([]catalog.ObligationCode, len(d.Obligations))
	for i, o := range d.Obligations {
		codes[i] = o.Code
	}
	return codes
}

type rule struct {
	applies func(Profile) bool
	code    catalog.ObligationCode
}

func always(Profile) bool { return true }

func segmentIs(s catalog.Segment) func(Profile) bool {
	return func(p Profile) bool { return p.Segment == s }
}

// rules is evaluated top to bottom; the order of matches is the order of
// the resulting obligation list.
var rules = []rule{
	{always, catalog.NR01},
	{always, catalog.NR07},
	{func(p Profile) bool { return p.HasMachinery }, catalog.NR12},
	{func(p Profile) bool { return p.HasHazardousAgents }, catalog.NR15},
	{func(p Profile) bool { return p.HasDangerousConditions }, catalog.NR16},
	{segmentIs(catalog.SegmentConstruction), catalog.NR18},
	{segmentIs(catalog.SegmentElectrical), catalog.NR10},
}

var baseBundle = []string{
	"Elaboração do PGR completo",
	"Elaboração e gestão do PCMSO",
	"Exames ocupacionais conforme PCMSO",
	"Gestão do eSocial (S-2220 e S-2240)",
	"Acesso ao sistema InfoSesi",
}

type addOn struct {
	applies func(Profile) bool
	name    string
}

// Machinery changes the obligations only; it has no bundle line.
var addOns = []addOn{
	{func(p Profile) bool { return p.HasHazardousAgents }, "Laudo de Insalubridade"},
	{func(p Profile) bool { return p.HasDangerousConditions }, "Laudo de Periculosidade"},
}

// BaseBundleSize is the number of lines every bundle starts with.
var BaseBundleSize = len(baseBundle)

// Evaluate computes the diagnosis for a profile. It never fails: missing or
// unknown values fall back to placeholders.
func Evaluate(p Profile) Diagnosis {
	return Diagnosis{
		Obligations:   obligationsFor(p),
		ServiceBundle: bundleFor(p),
		Price:         LookupPrice(p.HeadcountBand),
		HeadcountBand: p.HeadcountBand,
		LeadTime:      leadTime,
		Note:          technicalNote,
	}
}

func obligationsFor(p Profile) []catalog.Obligation {
	seen := make(map[catalog.ObligationCode]struct{}, len(rules))
	out := make([]catalog.Obligation, 0, len(rules))
	for _, r := range rules {
		if !r.applies(p) {
			continue
		}
		if _, dup := seen[r.code]; dup {
			continue
		}
		seen[r.code] = struct{}{}
		out = append(out, catalog.MustObligation(r.code))
	}
	return out
}

func bundleFor(p Profile) []BundleItem {
	out := make([]BundleItem, 0, len(baseBundle)+len(addOns))
	for _, name := range baseBundle {
		out = append(out, BundleItem{Name: name})
	}
	for _, a := range addOns {
		if a.applies(p) {
			out = append(out, BundleItem{Name: a.name, AddOn: true})
		}
	}
	return out
}
