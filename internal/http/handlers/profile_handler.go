// README: Profile handlers: mirror sign-in profile, register push tokens.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"packpal/internal/http/middleware"
	"packpal/internal/modules/user"
	"packpal/internal/types"
)

type ProfileHandler struct {
	users *user.Store
}

func NewProfileHandler(users *user.Store) *ProfileHandler {
	return &ProfileHandler{users: users}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	})
}

type upsertProfileReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// UpsertMe mirrors the identity provider's profile on sign-in. The ID always
// comes from the verified token, never from the body.
func (h *ProfileHandler) UpsertMe(c *gin.Context) {
	var req upsertProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u := &user.User{
		ID:        types.ID(middleware.CallerUID(c)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.users.Upsert(c.Request.Context(), u); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": u.ID})
}

type pushTokenReq struct {
	Token string `json:"token"`
}

func (h *ProfileHandler) AddPushToken(c *gin.Context) {
	var req pushTokenReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		writeError(c, http.StatusBadRequest, "missing token")
		return
	}
	if err := h.users.AddPushToken(c.Request.Context(), types.ID(middleware.CallerUID(c)), req.Token); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
