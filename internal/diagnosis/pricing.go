package diagnosis

import (
	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/platform/money"
)

// PriceKind tells whether an estimate carries numbers or a placeholder.
type PriceKind string

const (
	// PriceQuoted has a monthly range and a setup fee.
	PriceQuoted PriceKind = "quoted"
	// PriceOnRequest is the top band: priced case by case.
	PriceOnRequest PriceKind = "on_request"
	// PriceBandNotProvided means the profile had no usable headcount band.
	PriceBandNotProvided PriceKind = "band_not_provided"
)

const (
	onRequestLabel       = "Sob consulta"
	bandNotProvidedLabel = "Informe o porte para estimar"
)

// PriceEstimate is the monthly fee range and one-time setup fee for a band.
// Amounts are in centavos and are zero unless Kind is PriceQuoted.
type PriceEstimate struct {
	Kind            PriceKind `json:"kind"`
	MonthlyMinCents int64     `json:"monthlyMinCents,omitempty"`
	MonthlyMaxCents int64     `json:"monthlyMaxCents,omitempty"`
	SetupCents      int64     `json:"setupCents,omitempty"`
	Monthly         string    `json:"monthly"`
	Setup           string    `json:"setup"`
}

type priceEntry struct {
	kind       PriceKind
	monthlyMin int64
	monthlyMax int64
	setup      int64
}

var priceTable = map[catalog.HeadcountBand]priceEntry{
	catalog.Band1To19:    {kind: PriceQuoted, monthlyMin: 35000, monthlyMax: 50000, setup: 80000},
	catalog.Band20To49:   {kind: PriceQuoted, monthlyMin: 60000, monthlyMax: 90000, setup: 120000},
	catalog.Band50To99:   {kind: PriceQuoted, monthlyMin: 100000, monthlyMax: 150000, setup: 200000},
	catalog.Band100To249: {kind: PriceQuoted, monthlyMin: 180000, monthlyMax: 250000, setup: 300000},
	catalog.Band250To499: {kind: PriceQuoted, monthlyMin: 300000, monthlyMax: 450000, setup: 500000},
	catalog.Band500Plus:  {kind: PriceOnRequest},
}

// LookupPrice resolves a band against the price table. Unknown or empty
// bands resolve to the band-not-provided placeholder.
func LookupPrice(band catalog.HeadcountBand) PriceEstimate {
	entry, ok := priceTable[band]
	if !ok {
		return PriceEstimate{Kind: PriceBandNotProvided, Monthly: bandNotProvidedLabel, Setup: bandNotProvidedLabel}
	}

	switch entry.kind {
	case PriceOnRequest:
		return PriceEstimate{Kind: PriceOnRequest, Monthly: onRequestLabel, Setup: onRequestLabel}
	default:
		return PriceEstimate{
			Kind:            PriceQuoted,
			MonthlyMinCents: entry.monthlyMin,
			MonthlyMaxCents: entry.monthlyMax,
			SetupCents:      entry.setup,
			Monthly:         money.FormatRange(entry.monthlyMin, entry.monthlyMax),
			Setup:           money.FormatBRL(entry.setup),
		}
	}
}
