package audithandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/audit"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

type Handler struct {
	Trail *audit.Trail
}

func NewHandler(trail *audit.Trail) *Handler {
	return &Handler{Trail: trail}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	filter := audit.Filter{
		Collection: strings.TrimSpace(r.URL.Query().Get("collection")),
		Action:     strings.TrimSpace(r.URL.Query().Get("action")),
	}
	api.Paginated(w, h.Trail.List(filter, page.Limit, page.Offset), page.Meta(h.Trail.Count(filter)),
		middleware.GetRequestID(r.Context()))
}
