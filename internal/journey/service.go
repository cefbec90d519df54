package journey

import (
	"slices"
	"time"

	"sst_portal_backend/platform/httpkit"
	"sst_portal_backend/platform/phone"
)

const (
	defaultCompany = "Cliente"
	welcome        = "Bem-vindo ao SESI Saúde Connect."
	noAppointments = "Nenhum agendamento ainda. Após a conclusão do PCMSO você poderá agendar os exames."
)

var timeline = []Step{
	{Title: "Proposta Aceita", Date: "20/11/2025", Status: StepDone},
	{Title: "Contrato Assinado", Date: "22/11/2025", Status: StepDone},
	{Title: "Envio da Planilha M1", Date: "Pendente", Status: StepPending, Highlight: true},
	{Title: "Visita Técnica", Date: "05/12/2025 (previsto)", Status: StepWaiting},
	{Title: "Elaboração do PGR", Date: "12/12/2025 (previsto)", Status: StepWaiting},
	{Title: "Entrega e Validação do PGR", Date: "Após 12/12/2025", Status: StepWaiting},
	{Title: "Elaboração do PCMSO", Date: "19/12/2025 (previsto)", Status: StepWaiting},
	{Title: "Entrega e Validação do PCMSO", Date: "Após 19/12/2025", Status: StepWaiting},
	{Title: "Treinamento do Sistema InfoSesi", Date: "A agendar", Status: StepWaiting},
	{Title: "Início dos Agendamentos de Exames", Date: "Após PCMSO", Status: StepWaiting},
}

var pendingItems = []PendingItem{
	{Title: "Enviar Planilha M1", Action: "upload"},
	{Title: "Validar dados do contrato", Action: "review"},
}

var recentDocuments = []RecentDocument{
	{Name: "Contrato de Prestação de Serviços", Status: "Disponível"},
	{Name: "PGR - Metalúrgica ABC", Status: "Em elaboração"},
	{Name: "PCMSO 2025", Status: "Aguardando PGR"},
}

var help = Help{
	Intro: "Em caso de dúvidas sobre NRs, PGR, PCMSO ou uso do sistema, fale com o consultor SESI ou com o Suporte Técnico pela área de Mensagens.",
	Topics: []string{
		"Prazos de implantação típicos: 30 a 45 dias úteis.",
		"Atualização de quadro de funcionários deve ser feita via Planilha M1.",
		"Laudos de Insalubridade e Periculosidade são conduzidos por equipe técnica habilitada.",
	},
}

// Service assembles the dashboard and help screens.
type Service struct {
	now func() time.Time
	loc *time.Location
}

func NewService() *Service {
	loc, err := time.LoadLocation("America/Bahia")
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	return &Service{now: time.Now, loc: loc}
}

// Dashboard builds the home screen for an account.
func (s *Service) Dashboard(account httpkit.AccountInfo) Dashboard {
	company := account.CompanyName
	if company == "" {
		company = defaultCompany
	}

	return Dashboard{
		Greeting:   "Olá, " + company + "!",
		Welcome:    welcome,
		LastAccess: s.now().In(s.loc).Format("02/01/2006"),
		Status: Status{
			Label:       "Aguardando envio da Planilha M1",
			Description: "Precisamos dos dados dos seus funcionários para iniciar a elaboração do PGR.",
			Progress:    25,
		},
		Consultant: Consultant{
			Name:     "Maria Silva",
			Role:     "Consultora de Relacionamento",
			WhatsApp: phone.FormatNational("+5571999990000"),
		},
		Timeline:             slices.Clone(timeline),
		PendingItems:         slices.Clone(pendingItems),
		RecentDocuments:      slices.Clone(recentDocuments),
		UpcomingAppointments: []string{},
		UpcomingNote:         noAppointments,
	}
}

// Help returns the quick help topics.
func (s *Service) Help() Help {
	return Help{Intro: help.Intro, Topics: slices.Clone(help.Topics)}
}

// Me maps the gate's account snapshot to the portal header.
func (s *Service) Me(account httpkit.AccountInfo) Me {
	return Me{
		ID:          account.ID,
		CompanyName: account.CompanyName,
		CNPJ:        account.TaxID,
		Segment:     account.Segment,
		Headcount:   account.Headcount,
		ContactName: account.ContactName,
		Email:       account.Email,
	}
}
