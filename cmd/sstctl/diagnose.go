package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/diagnosis"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// profileFile is the YAML shape accepted by --file.
type profileFile struct {
	ContactName            string `yaml:"fullName"`
	Email                  string `yaml:"email"`
	Phone                  string `yaml:"phone"`
	CompanyName            string `yaml:"companyName"`
	TaxID                  string `yaml:"cnpj"`
	Role                   string `yaml:"role"`
	City                   string `yaml:"city"`
	Segment                string `yaml:"segment"`
	HeadcountBand          string `yaml:"headcountBand"`
	HasMachinery           bool   `yaml:"hasMachinery"`
	HasHazardousAgents     bool   `yaml:"hasHazardousAgents"`
	HasDangerousConditions bool   `yaml:"hasDangerousConditions"`
}

func (f profileFile) profile() diagnosis.Profile {
	return diagnosis.Profile{
		ContactName:            f.ContactName,
		Email:                  f.Email,
		Phone:                  f.Phone,
		CompanyName:            f.CompanyName,
		TaxID:                  f.TaxID,
		Role:                   f.Role,
		City:                   f.City,
		Segment:                catalog.Segment(f.Segment),
		HeadcountBand:          catalog.HeadcountBand(f.HeadcountBand),
		HasMachinery:           f.HasMachinery,
		HasHazardousAgents:     f.HasHazardousAgents,
		HasDangerousConditions: f.HasDangerousConditions,
	}
}

type diagnoseFlags struct {
	file      string
	format    string
	segment   string
	band      string
	machinery bool
	hazardous bool
	dangerous bool
}

func newDiagnoseCommand() *cobra.Command {
	var flags diagnoseFlags
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Evaluate a company profile and print obligations, bundle and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := resolveProfile(flags, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return writeDiagnosis(cmd.OutOrStdout(), diagnosis.Evaluate(p), flags.format)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "YAML profile file")
	f.StringVar(&flags.format, "format", "text", "Output format: text or json")
	f.StringVar(&flags.segment, "segment", "", "Company segment")
	f.StringVar(&flags.band, "band", "", "Headcount band, e.g. 50-99")
	f.BoolVar(&flags.machinery, "machinery", false, "Company operates machinery")
	f.BoolVar(&flags.hazardous, "hazardous", false, "Workers are exposed to hazardous agents")
	f.BoolVar(&flags.dangerous, "dangerous", false, "Workers face dangerous conditions")
	return cmd
}

// resolveProfile loads --file when given and lets explicit flags override it.
func resolveProfile(flags diagnoseFlags, changed func(string) bool) (diagnosis.Profile, error) {
	var p diagnosis.Profile
	if flags.file != "" {
		loaded, err := loadProfile(flags.file)
		if err != nil {
			return diagnosis.Profile{}, codeError(2, "loading profile: %s", err)
		}
		p = loaded
	}

	if changed("segment") {
		p.Segment = catalog.Segment(flags.segment)
	}
	if changed("band") {
		p.HeadcountBand = catalog.HeadcountBand(flags.band)
	}
	if changed("machinery") {
		p.HasMachinery = flags.machinery
	}
	if changed("hazardous") {
		p.HasHazardousAgents = flags.hazardous
	}
	if changed("dangerous") {
		p.HasDangerousConditions = flags.dangerous
	}

	if p.Segment != "" && !catalog.IsSegment(string(p.Segment)) {
		return diagnosis.Profile{}, codeError(2, "unknown segment %q", p.Segment)
	}
	if p.HeadcountBand != "" {
		if _, ok := catalog.Band(string(p.HeadcountBand)); !ok {
			return diagnosis.Profile{}, codeError(2, "unknown headcount band %q", p.HeadcountBand)
		}
	}
	return p, nil
}

func loadProfile(path string) (diagnosis.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diagnosis.Profile{}, err
	}
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return diagnosis.Profile{}, err
	}
	return pf.profile(), nil
}

func writeDiagnosis(w io.Writer, d diagnosis.Diagnosis, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "text", "":
	default:
		return codeError(2, "unknown format %q", format)
	}

	fmt.Fprintln(w, "Obrigações:")
	for _, o := range d.Obligations {
		fmt.Fprintf(w, "  %s  %s\n", o.Code, o.Name)
	}
	fmt.Fprintln(w, "Pacote de serviços:")
	for _, item := range d.ServiceBundle {
		marker := "-"
		if item.AddOn {
			marker = "+"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, item.Name)
	}
	fmt.Fprintf(w, "Mensalidade: %s\n", d.Price.Monthly)
	fmt.Fprintf(w, "Implantação: %s\n", d.Price.Setup)
	fmt.Fprintf(w, "Prazo: %s\n", d.LeadTime)
	fmt.Fprintln(w, d.Note)
	return nil
}
