package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/dto/request"
	"travel-crm/internal/usecase"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PackageHandler struct {
	service      usecase.PackageService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewPackageHandler(service usecase.PackageService, availability usecase.AvailabilityService, log *zap.Logger) *PackageHandler {
	return &PackageHandler{
		service:      service,
		availability: availability,
		log:          log.With(zap.String("handler", "package")),
	}
}

// CreatePackage handles POST /api/packages (staff only)
func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", pkg)
}

// GetPackageByID handles GET /api/packages/{id} (public)
func (h *PackageHandler) GetPackageByID(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	pkg, err := h.service.GetPackageByID(r.Context(), packageID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", pkg)
}

// GetAllPackages handles GET /api/packages (public)
func (h *PackageHandler) GetAllPackages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
	activeOnly := query.Get("include_inactive") != "true"

	packages, err := h.service.GetAllPackages(r.Context(), activeOnly, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}

// UpdatePackage handles PUT /api/packages/{id} (staff only)
func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	var req request.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.UpdatePackage(r.Context(), packageID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", pkg)
}

// DeactivatePackage handles DELETE /api/packages/{id} (staff only).
// Packages are never hard-deleted; bookings keep referencing them.
func (h *PackageHandler) DeactivatePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	if err := h.service.SetPackageActive(r.Context(), packageID, false); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CheckAvailability handles GET /api/packages/{id}/availability (public)
func (h *PackageHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	participants := utils.ParseInt(r.URL.Query().Get("participants"), 1)

	availability, err := h.availability.CheckAvailability(r.Context(), packageID, participants)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
