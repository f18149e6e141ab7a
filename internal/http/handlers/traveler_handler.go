// README: Traveler handlers: acceptance and travel lifecycle.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"packpal/internal/http/middleware"
	"packpal/internal/modules/matching"
	"packpal/internal/modules/pricing"
	"packpal/internal/modules/travel"
	"packpal/internal/types"
)

type TravelerHandler struct {
	matching *matching.Service
	travels  *travel.Service
}

func NewTravelerHandler(matchingSvc *matching.Service, travels *travel.Service) *TravelerHandler {
	return &TravelerHandler{matching: matchingSvc, travels: travels}
}

type acceptReq struct {
	Medium string `json:"medium"`
}

// Accept runs the acceptance workflow for the authenticated traveler. The
// response always includes the per-step receipt so the client can tell a
// full success from a success with degraded side effects.
func (h *TravelerHandler) Accept(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing package id")
		return
	}
	var req acceptReq
	// Body is optional; medium defaults inside the service.
	_ = c.ShouldBindJSON(&req)

	acc, err := h.matching.Accept(c.Request.Context(), matching.AcceptCommand{
		PackageID:  types.ID(id),
		TravelerID: types.ID(middleware.CallerUID(c)),
		Medium:     pricing.Medium(req.Medium),
	})
	if err != nil {
		if acc != nil {
			// Surface the receipt alongside the error status.
			status := domainErrorStatus(err)
			writeJSON(c, status, gin.H{"error": err.Error(), "steps": stepViews(acc.Steps)})
			return
		}
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, acceptanceView(acc))
}

func (h *TravelerHandler) GetTravel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing travel id")
		return
	}
	t, err := h.travels.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if t.TravelerID != types.ID(middleware.CallerUID(c)) {
		writeError(c, http.StatusForbidden, "not your travel")
		return
	}
	writeJSON(c, http.StatusOK, travelView(t))
}

func (h *TravelerHandler) ListTravels(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	travels, err := h.travels.ListByTraveler(c.Request.Context(), types.ID(middleware.CallerUID(c)), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(travels))
	for _, t := range travels {
		out = append(out, travelView(t))
	}
	writeJSON(c, http.StatusOK, gin.H{"travels": out})
}

type travelStatusReq struct {
	Status string `json:"status"`
}

func (h *TravelerHandler) UpdateTravelStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing travel id")
		return
	}
	var req travelStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing status")
		return
	}
	t, err := h.travels.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if t.TravelerID != types.ID(middleware.CallerUID(c)) {
		writeError(c, http.StatusForbidden, "not your travel")
		return
	}
	if err := h.travels.Advance(c.Request.Context(), types.ID(id), travel.Status(req.Status)); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"travel_id": id, "status": req.Status})
}

func acceptanceView(acc *matching.Acceptance) gin.H {
	return gin.H{
		"package_id":      acc.PackageID,
		"travel_id":       acc.TravelID,
		"tracking_number": acc.TrackingNumber,
		"distance_km":     acc.DistanceKm,
		"price":           moneyJSON{Amount: acc.Price.Amount, Currency: acc.Price.Currency},
		"dropoff":         gin.H{"lat": acc.Dropoff.Lat, "lng": acc.Dropoff.Lng},
		"steps":           stepViews(acc.Steps),
	}
}

func stepViews(steps []matching.StepResult) []gin.H {
	out := make([]gin.H, 0, len(steps))
	for _, s := range steps {
		v := gin.H{"step": s.Step, "ok": s.OK()}
		if s.Err != nil {
			v["error"] = s.Err.Error()
		}
		out = append(out, v)
	}
	return out
}

func travelView(t *travel.Travel) gin.H {
	return gin.H{
		"id":              t.ID,
		"traveler_id":     t.TravelerID,
		"package_id":      t.PackageID,
		"start":           toLocationJSON(t.Start),
		"destination":     toLocationJSON(t.Destination),
		"medium":          t.Medium,
		"tracking_number": t.TrackingNumber,
		"price":           moneyJSON{Amount: t.Price.Amount, Currency: t.Price.Currency},
		"status":          t.Status,
		"created_at":      t.CreatedAt.Format(time.RFC3339),
	}
}
