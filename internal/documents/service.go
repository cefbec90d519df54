package documents

import (
	"context"
	"slices"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/events"
	"sst_portal_backend/platform/apperr"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgUnknownType   = "unknown document type"
	msgUnknownStatus = "unknown document status"
	msgNoFiles       = "no file names provided"
	msgUploaded      = "Arquivos recebidos. Nossa equipe fará a conferência."
)

var seed = []Document{
	{Name: "Contrato SESI nº 2025/1234", Type: "Contratuais", Status: "Disponível", Date: "22/11/2025"},
	{Name: "Proposta Comercial", Type: "Contratuais", Status: "Disponível", Date: "20/11/2025"},
	{Name: "PGR - Metalúrgica ABC", Type: "PGR", Status: "Em elaboração", Date: "Previsto 12/12/2025"},
	{Name: "PCMSO 2025", Type: "PCMSO", Status: "Aguardando PGR", Date: "Previsto 19/12/2025"},
	{Name: "Modelo Planilha M1", Type: "Outros", Status: "Disponível", Date: "23/11/2025"},
}

// Service is the read-only document registry.
type Service struct {
	docs []Document
	bus  events.Bus
	log  *logger.Logger
}

// NewService creates the registry with the standard client documents.
func NewService(bus events.Bus, log *logger.Logger) *Service {
	return &Service{docs: slices.Clone(seed), bus: bus, log: log}
}

// List filters the registry by type and status. Registry order is kept.
func (s *Service) List(req ListRequest) (ListResponse, error) {
	typ := normalizeFilter(req.Type)
	status := normalizeFilter(req.Status)
	if typ != catalog.FilterAll && !slices.Contains(catalog.DocumentTypes(), typ) {
		return ListResponse{}, apperr.Validation(msgUnknownType).WithDetails(map[string]any{"type": typ})
	}
	if status != catalog.FilterAll && !slices.Contains(catalog.DocumentStatuses(), status) {
		return ListResponse{}, apperr.Validation(msgUnknownStatus).WithDetails(map[string]any{"status": status})
	}

	items := make([]Document, 0, len(s.docs))
	for _, d := range s.docs {
		if typ != catalog.FilterAll && d.Type != typ {
			continue
		}
		if status != catalog.FilterAll && d.Status != status {
			continue
		}
		items = append(items, d)
	}
	return ListResponse{Items: items, Total: len(items), Type: typ, Status: status}, nil
}

// RegisterUploads acknowledges the uploaded file names. Nothing is stored;
// the names are announced to the rest of the system.
func (s *Service) RegisterUploads(ctx context.Context, accountID uuid.UUID, fileNames []string) (UploadResponse, error) {
	received := make([]string, 0, len(fileNames))
	for _, name := range fileNames {
		if clean := sanitize.Line(name); clean != "" {
			received = append(received, clean)
		}
	}
	if len(received) == 0 {
		return UploadResponse{}, apperr.Validation(msgNoFiles)
	}

	s.log.Info("client documents uploaded", "accountId", accountID, "count", len(received))
	s.bus.Publish(ctx, events.DocumentsUploaded{
		BaseEvent: events.NewBaseEvent(),
		AccountID: accountID,
		FileNames: received,
	})
	return UploadResponse{Received: received, Message: msgUploaded}, nil
}

func normalizeFilter(v string) string {
	v = sanitize.Line(v)
	if v == "" {
		return catalog.FilterAll
	}
	return v
}
