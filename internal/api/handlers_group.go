package api

import "Awareness/internal/api/handler"

// HandlersGroup bundles the initialized handler instances.
type HandlersGroup struct {
	DashboardHandler *handler.DashboardHandler
	AuditHandler     *handler.AuditHandler
	AdminHandler     *handler.AdminHandler
}
