// Package diagnosis maps a company profile to the regulatory obligations
// that apply to it, the recommended service bundle and a price estimate.
// Evaluation is pure: no I/O, no clock, no failure path.
package diagnosis

import "sst_portal_backend/internal/catalog"

// Profile is the company data collected by the intake form.
type Profile struct {
	ContactName            string                `json:"fullName"`
	Email                  string                `json:"email"`
	Phone                  string                `json:"phone"`
	CompanyName            string                `json:"companyName"`
	TaxID                  string                `json:"cnpj"`
	Role                   string                `json:"role"`
	City                   string                `json:"city"`
	Segment                catalog.Segment       `json:"segment"`
	HeadcountBand          catalog.HeadcountBand `json:"headcountBand"`
	HasMachinery           bool                  `json:"hasMachinery"`
	HasHazardousAgents     bool                  `json:"hasHazardousAgents"`
	HasDangerousConditions bool                  `json:"hasDangerousConditions"`
}

// MissingFields lists the JSON names of required intake fields left blank,
// in form order. Role and the hazard flags are optional.
func (p Profile) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", p.ContactName},
		{"email", p.Email},
		{"phone", p.Phone},
		{"companyName", p.CompanyName},
		{"cnpj", p.TaxID},
		{"city", p.City},
		{"segment", string(p.Segment)},
		{"headcountBand", string(p.HeadcountBand)},
	}

	var missing []string
	for _, f := range required {
		if isBlank(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
