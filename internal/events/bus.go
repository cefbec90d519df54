package events

import (
	platformevents "sst_portal_backend/platform/events"
	"sst_portal_backend/platform/logger"
)

// InMemoryBus is the process-local bus shared by the API and the worker.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus returns a bus with no subscribers; modules register their
// handlers at startup.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
