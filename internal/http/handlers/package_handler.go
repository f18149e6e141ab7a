// README: Package handlers: submission, lookup, pending browse.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"packpal/internal/http/middleware"
	"packpal/internal/modules/matching"
	"packpal/internal/modules/parcel"
	"packpal/internal/types"
)

type PackageHandler struct {
	parcels      *parcel.Service
	matching     *matching.Service
	browseRadius float64
}

func NewPackageHandler(parcels *parcel.Service, matchingSvc *matching.Service, browseRadiusKm float64) *PackageHandler {
	return &PackageHandler{parcels: parcels, matching: matchingSvc, browseRadius: browseRadiusKm}
}

type locationReq struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode string  `json:"zip_code"`
}

func (r locationReq) toLocation() parcel.Location {
	return parcel.Location{
		Address:  r.Address,
		Position: types.Point{Lat: r.Lat, Lng: r.Lng},
		City:     r.City,
		State:    r.State,
		ZipCode:  r.ZipCode,
	}
}

type createPackageReq struct {
	Type        string      `json:"type"`
	WeightLabel string      `json:"weight_label"`
	Size        string      `json:"size"`
	Content     string      `json:"content"`
	Description string      `json:"description"`
	Pickup      locationReq `json:"pickup"`
	Delivery    locationReq `json:"delivery"`
	Receiver    struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		AltPhone string `json:"alt_phone"`
	} `json:"receiver"`
}

func (h *PackageHandler) Create(c *gin.Context) {
	var req createPackageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	draft := parcel.Draft{
		Type:        req.Type,
		WeightLabel: req.WeightLabel,
		Size:        parcel.Size(req.Size),
		Content:     parcel.Content(req.Content),
		Description: req.Description,
		Pickup:      req.Pickup.toLocation(),
		Delivery:    req.Delivery.toLocation(),
		Receiver: parcel.Receiver{
			Name:     req.Receiver.Name,
			Phone:    req.Receiver.Phone,
			Email:    req.Receiver.Email,
			AltPhone: req.Receiver.AltPhone,
		},
	}
	p, err := h.parcels.Submit(c.Request.Context(), types.ID(middleware.CallerUID(c)), draft)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, packageView(p))
}

func (h *PackageHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing package id")
		return
	}
	p, err := h.parcels.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, packageView(p))
}

// ListPending serves the traveler's browse screen. With lat/lng query
// parameters it searches the pending index around that origin; without them
// it falls back to the newest pending packages.
func (h *PackageHandler) ListPending(c *gin.Context) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" || lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			writeError(c, http.StatusBadRequest, "invalid lat/lng")
			return
		}
		radiusKm, err := strconv.ParseFloat(c.Query("radius_km"), 64)
		if err != nil || radiusKm <= 0 {
			radiusKm = h.browseRadius
		}
		pkgs, err := h.matching.BrowsePending(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radiusKm)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		writeJSON(c, http.StatusOK, gin.H{"packages": packageViews(pkgs)})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	pkgs, err := h.parcels.ListPending(c.Request.Context(), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"packages": packageViews(pkgs)})
}

type locationJSON struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
	ZipCode string  `json:"zip_code,omitempty"`
}

func toLocationJSON(l parcel.Location) locationJSON {
	return locationJSON{
		Address: l.Address,
		Lat:     l.Position.Lat,
		Lng:     l.Position.Lng,
		City:    l.City,
		State:   l.State,
		ZipCode: l.ZipCode,
	}
}

type moneyJSON struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func packageView(p *parcel.Package) gin.H {
	v := gin.H{
		"id":              p.ID,
		"sender_id":       p.SenderID,
		"tracking_number": p.TrackingNumber,
		"status":          p.Status,
		"type":            p.Type,
		"weight_label":    p.WeightLabel,
		"size":            p.Size,
		"content":         p.Content,
		"description":     p.Description,
		"pickup":          toLocationJSON(p.Pickup),
		"delivery":        toLocationJSON(p.Delivery),
		"receiver": gin.H{
			"name":      p.Receiver.Name,
			"phone":     p.Receiver.Phone,
			"email":     p.Receiver.Email,
			"alt_phone": p.Receiver.AltPhone,
		},
		"created_at": p.CreatedAt.Format(time.RFC3339),
	}
	if p.TravelerID != nil {
		v["traveler_id"] = *p.TravelerID
	}
	if p.Price != nil {
		v["price"] = moneyJSON{Amount: p.Price.Amount, Currency: p.Price.Currency}
	}
	return v
}

func packageViews(pkgs []*parcel.Package) []gin.H {
	out := make([]gin.H, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, packageView(p))
	}
	return out
}
