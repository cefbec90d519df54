package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type proposalSummaryEmailData struct {
	baseEmailData
	ContactName string
	CompanyName string
	Obligations []string
	MonthlyFee  string
	SetupFee    string
}

type welcomeEmailData struct {
	baseEmailData
	ContactName string
	CompanyName string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderProposalSummary(s ProposalSummary) (string, error) {
	return renderEmailTemplate("proposal_summary.html", proposalSummaryEmailData{
		baseEmailData: baseEmailData{
			Title:    "Sua proposta está pronta",
			Heading:  "Sua proposta está pronta",
			CTALabel: "Criar minha conta",
			CTAURL:   s.SignupURL,
		},
		ContactName: s.ContactName,
		CompanyName: s.CompanyName,
		Obligations: s.Obligations,
		MonthlyFee:  s.MonthlyFee,
		SetupFee:    s.SetupFee,
	})
}

func renderWelcome(contactName, companyName, portalURL string) (string, error) {
	return renderEmailTemplate("welcome.html", welcomeEmailData{
		baseEmailData: baseEmailData{
			Title:    subjectWelcome,
			Heading:  "Conta criada com sucesso",
			CTALabel: "Acessar o portal",
			CTAURL:   portalURL,
		},
		ContactName: contactName,
		CompanyName: companyName,
	})
}
