package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membo/internal/application/orchestrators"
	"membo/internal/domain/branding"
)

// tenantResponse is a tenant profile plus its rendered about-section.
type tenantResponse struct {
	branding.Tenant
	AboutHTML string `json:"aboutHtml"`
}

func newTenantResponse(t branding.Tenant) tenantResponse {
	return tenantResponse{Tenant: t, AboutHTML: t.AboutHTML()}
}

// handleListBranding lists all tenant profiles.
func (s *Server) handleListBranding(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.Brandings.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]tenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, newTenantResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetBranding returns one tenant's landing-page profile.
func (s *Server) handleGetBranding(w http.ResponseWriter, r *http.Request) {
	tenant, err := s.Brandings.GetByKey(r.Context(), chi.URLParam(r, "tenant"))
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTenantResponse(tenant))
}

// handleUpdateBranding edits a tenant's landing-page profile.
func (s *Server) handleUpdateBranding(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpdateBrandingInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.Key = chi.URLParam(r, "tenant")

	updated, err := orchestrators.ExecuteUpdateBranding(r.Context(), input, orchestrators.UpdateBrandingDeps{
		BrandingStore: s.Brandings,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTenantResponse(updated))
}
