// Package catalog holds the fixed reference data of the onboarding portal:
// industry segments, headcount bands, served cities, the regulatory
// obligation catalog and the option lists used by the client screens.
package catalog

import "slices"

// Segment is an industry segment from the closed intake list.
type Segment string

const (
	SegmentFood         Segment = "Alimentício e Bebidas"
	SegmentMetallurgy   Segment = "Metalúrgico e Siderúrgico"
	SegmentChemical     Segment = "Químico e Petroquímico"
	SegmentConstruction Segment = "Construção Civil"
	SegmentTextile      Segment = "Têxtil e Vestuário"
	SegmentAutomotive   Segment = "Automobilístico e Autopeças"
	SegmentPharma       Segment = "Farmacêutico e Cosméticos"
	SegmentWood         Segment = "Madeira e Mobiliário"
	SegmentPaper        Segment = "Papel e Celulose"
	SegmentPlastic      Segment = "Plástico e Borracha"
	SegmentElectrical   Segment = "Elétrico e Eletrônico"
	SegmentMining       Segment = "Mineração"
	SegmentAgribusiness Segment = "Agronegócio/Agroindústria"
	SegmentOther        Segment = "Outro"
)

var segments = []Segment{
	SegmentFood,
	SegmentMetallurgy,
	SegmentChemical,
	SegmentConstruction,
	SegmentTextile,
	SegmentAutomotive,
	SegmentPharma,
	SegmentWood,
	SegmentPaper,
	SegmentPlastic,
	SegmentElectrical,
	SegmentMining,
	SegmentAgribusiness,
	SegmentOther,
}

// HeadcountBand is an ordered employee-count bucket used for pricing.
type HeadcountBand string

const (
	Band1To19    HeadcountBand = "1-19"
	Band20To49   HeadcountBand = "20-49"
	Band50To99   HeadcountBand = "50-99"
	Band100To249 HeadcountBand = "100-249"
	Band250To499 HeadcountBand = "250-499"
	Band500Plus  HeadcountBand = "500+"
)

// BandOption pairs a band with its display label. Rank follows band order.
type BandOption struct {
	Value HeadcountBand `json:"value"`
	Label string        `json:"label"`
	Rank  int           `json:"rank"`
}

var headcountBands = []BandOption{
	{Value: Band1To19, Label: "1-19 (Micro)", Rank: 1},
	{Value: Band20To49, Label: "20-49 (Pequena)", Rank: 2},
	{Value: Band50To99, Label: "50-99 (Pequena)", Rank: 3},
	{Value: Band100To249, Label: "100-249 (Média)", Rank: 4},
	{Value: Band250To499, Label: "250-499 (Média)", Rank: 5},
	{Value: Band500Plus, Label: "500+ (Grande)", Rank: 6},
}

var cities = []string{
	"Salvador",
	"Feira de Santana",
	"Vitória da Conquista",
	"Camaçari",
	"Itabuna",
}

// ObligationCode identifies a regulatory norm (NR).
type ObligationCode string

const (
	NR01 ObligationCode = "NR-01"
	NR07 ObligationCode = "NR-07"
	NR10 ObligationCode = "NR-10"
	NR12 ObligationCode = "NR-12"
	NR15 ObligationCode = "NR-15"
	NR16 ObligationCode = "NR-16"
	NR18 ObligationCode = "NR-18"
)

// Obligation is a catalog entry for a regulatory norm.
type Obligation struct {
	Code      ObligationCode `json:"code"`
	Name      string         `json:"name"`
	Universal bool           `json:"universal"`
}

var obligations = []Obligation{
	{Code: NR01, Name: "Gerenciamento de Riscos Ocupacionais", Universal: true},
	{Code: NR07, Name: "PCMSO", Universal: true},
	{Code: NR12, Name: "Segurança em Máquinas"},
	{Code: NR15, Name: "Insalubridade"},
	{Code: NR16, Name: "Periculosidade"},
	{Code: NR18, Name: "Condições e Meio Ambiente de Trabalho"},
	{Code: NR10, Name: "Segurança em Instalações e Serviços em Eletricidade"},
}

var examTypes = []string{
	"Admissional",
	"Periódico",
	"Demissional",
	"Retorno ao Trabalho",
	"Mudança de Risco",
}

var units = []string{
	"Feira de Santana",
	"Salvador",
	"Vitória da Conquista",
}

// FilterAll is the option that disables a list filter.
const FilterAll = "Todos"

var documentTypes = []string{"Contratuais", "PGR", "PCMSO", "ASOs", "Laudos", "Outros"}

var documentStatuses = []string{"Disponível", "Em elaboração", "Pendente validação", "Aguardando PGR"}

// Segments returns the 14 intake segments; the last one is "Outro".
func Segments() []Segment { return slices.Clone(segments) }

// HeadcountBands returns the bands in ascending order.
func HeadcountBands() []BandOption { return slices.Clone(headcountBands) }

// Cities returns the served cities.
func Cities() []string { return slices.Clone(cities) }

// Obligations returns every known obligation in evaluation order.
func Obligations() []Obligation { return slices.Clone(obligations) }

// ExamTypes returns the occupational exam kinds a client can book.
func ExamTypes() []string { return slices.Clone(examTypes) }

// Units returns the service units that perform exams.
func Units() []string { return slices.Clone(units) }

// DocumentTypes returns the document categories, without FilterAll.
func DocumentTypes() []string { return slices.Clone(documentTypes) }

// DocumentStatuses returns the document statuses, without FilterAll.
func DocumentStatuses() []string { return slices.Clone(documentStatuses) }

// IsSegment reports whether s belongs to the closed segment list.
func IsSegment(s string) bool { return slices.Contains(segments, Segment(s)) }

// IsCity reports whether c is a served city.
func IsCity(c string) bool { return slices.Contains(cities, c) }

// IsExamType reports whether t is a bookable exam type.
func IsExamType(t string) bool { return slices.Contains(examTypes, t) }

// IsUnit reports whether u is a known service unit.
func IsUnit(u string) bool { return slices.Contains(units, u) }

// Band looks up a band option by value.
func Band(value string) (BandOption, bool) {
	for _, b := range headcountBands {
		if string(b.Value) == value {
			return b, true
		}
	}
	return BandOption{}, false
}

// LookupObligation returns the catalog entry for a code.
func LookupObligation(code ObligationCode) (Obligation, bool) {
	for _, o := range obligations {
		if o.Code == code {
			return o, true
		}
	}
	return Obligation{}, false
}

// MustObligation is LookupObligation for codes defined in this package.
func MustObligation(code ObligationCode) Obligation {
	o, ok := LookupObligation(code)
	if !ok {
		panic("catalog: unknown obligation " + string(code))
	}
	return o
}
