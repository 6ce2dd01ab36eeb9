package applications

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobnest-app/jobnest-backend/internal/auth"
)

// Store is the subset of Repo the handlers need.
type Store interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Application, error)
	Create(ctx context.Context, ownerID string, in NewApplication) (*Application, error)
	Update(ctx context.Context, ownerID, id string, in UpdateApplication) (bool, error)
	SoftDelete(ctx context.Context, ownerID, id string) (bool, error)
}

type Handler struct {
	store Store
}

func Register(rg *gin.RouterGroup, store Store) {
	h := &Handler{store: store}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.store.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[applications] list user=%s error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

type createReq struct {
	Role           string `json:"role"`
	Company        string `json:"company"`
	Platform       string `json:"platform"`
	ApplicationURL string `json:"application_url"`
	ResumeURL      string `json:"resume_url"`
	Status         string `json:"status"`
	AppliedAt      string `json:"applied_at"` // YYYY-MM-DD, defaults to today
	Notes          string `json:"notes"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	req.Role = strings.TrimSpace(req.Role)
	req.Company = strings.TrimSpace(req.Company)
	if req.Role == "" || req.Company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "role and company are required"})
		return
	}

	status := StatusApplied
	if req.Status != "" {
		var err error
		status, err = ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	appliedAt := time.Now().UTC()
	if req.AppliedAt != "" {
		t, err := time.Parse("2006-01-02", req.AppliedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "applied_at must be YYYY-MM-DD"})
			return
		}
		appliedAt = t
	}

	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
		return
	}

	a, err := h.store.Create(c.Request.Context(), userID, NewApplication{
		Role:           req.Role,
		Company:        req.Company,
		Platform:       strings.TrimSpace(req.Platform),
		ApplicationURL: strings.TrimSpace(req.ApplicationURL),
		ResumeURL:      strings.TrimSpace(req.ResumeURL),
		Status:         status,
		AppliedAt:      appliedAt,
		Notes:          req.Notes,
	})
	if err != nil {
		log.Printf("[applications] create user=%s error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to add application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "application": a})
}

type updateReq struct {
	Role           *string `json:"role"`
	Company        *string `json:"company"`
	Platform       *string `json:"platform"`
	ApplicationURL *string `json:"application_url"`
	ResumeURL      *string `json:"resume_url"`
	Status         *string `json:"status"`
	AppliedAt      *string `json:"applied_at"`
	Notes          *string `json:"notes"`
}

// update applies the partial edit and answers with the re-fetched full list
// so the caller never drifts from server-side state.
func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	upd := UpdateApplication{
		Role:           req.Role,
		Company:        req.Company,
		Platform:       req.Platform,
		ApplicationURL: req.ApplicationURL,
		ResumeURL:      req.ResumeURL,
		Notes:          req.Notes,
	}

	if req.Status != nil {
		status, err := ParseStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		upd.Status = &status
	}

	if req.AppliedAt != nil {
		t, err := time.Parse("2006-01-02", *req.AppliedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "applied_at must be YYYY-MM-DD"})
			return
		}
		upd.AppliedAt = &t
	}

	userID := auth.UserDBID(c)
	found, err := h.store.Update(c.Request.Context(), userID, id, upd)
	if err != nil {
		log.Printf("[applications] update user=%s id=%s error=%v", userID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update application"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "application not found"})
		return
	}

	items, err := h.store.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[applications] refetch user=%s error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	userID := auth.UserDBID(c)

	ok, err := h.store.SoftDelete(c.Request.Context(), userID, id)
	if err != nil {
		log.Printf("[applications] delete user=%s id=%s error=%v", userID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete application"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": id})
}
