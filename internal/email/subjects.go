package email

const (
	subjectProposalSummaryFmt = "Sua proposta SESI Saúde Connect - %s"
	subjectWelcome            = "Bem-vindo ao SESI Saúde Connect"
)
