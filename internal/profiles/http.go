package profiles

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobnest-app/jobnest-backend/internal/auth"
)

// Store is the subset of Repo the handlers need.
type Store interface {
	Get(ctx context.Context, id string) (*Profile, error)
	UpdateName(ctx context.Context, id, firstName, lastName string) (*Profile, error)
}

type Handler struct {
	store Store
}

func Register(rg gin.IRouter, store Store) {
	h := &Handler{store: store}

	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.update)
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	p, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

type updateReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.store.UpdateName(c.Request.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}
