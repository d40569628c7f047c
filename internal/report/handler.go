// AngelaMos | 2026
// handler.go

package report

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/salary", h.SalaryReport)
	})
}

func (h *Handler) SalaryReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.BuildSalaryReport(
		r.Context(),
		middleware.GetCaller(r.Context()),
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "admin or supervisor access required")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, rows)
}
