package domain

import "slices"

// Client screen paths used as redirect targets.
const (
	IntakePath       = "/cliente"
	SignupPath       = "/cliente/cadastro"
	LoginPath        = "/cliente/login"
	DashboardPath    = "/cliente/dashboard"
	DocumentsPath    = "/cliente/documentos"
	AppointmentsPath = "/cliente/agendamentos"
	MessagesPath     = "/cliente/mensagens"
	HelpPath         = "/cliente/ajuda"
)

var portalPaths = []string{DashboardPath, DocumentsPath, AppointmentsPath, MessagesPath, HelpPath}

// IsPortalPath reports whether path is a screen that requires an account.
func IsPortalPath(path string) bool {
	return slices.Contains(portalPaths, path)
}
