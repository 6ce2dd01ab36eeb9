package sharing

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobnest-app/jobnest-backend/internal/applications"
	"github.com/jobnest-app/jobnest-backend/internal/auth"
)

// Store is the subset of Repo the handlers need.
type Store interface {
	EnsureList(ctx context.Context, ownerID string) (*SharedList, error)
	ListInvites(ctx context.Context, listID string) ([]Invite, error)
	CreateInvite(ctx context.Context, listID, inviteeEmail string) (*Invite, error)
	GetListByPublicID(ctx context.Context, publicID string) (*SharedList, error)
	GetInvite(ctx context.Context, listID, inviteeEmail string) (*Invite, error)
	RespondToInvite(ctx context.Context, listID, inviteeEmail string, decision InviteStatus) (*Invite, error)
	SharedWithMe(ctx context.Context, inviteeEmail string) ([]SharedWithMeRow, error)
}

// AppsReader exposes the owner's applications to accepted viewers.
// Implemented by applications.Repo; viewers only ever get the read path.
type AppsReader interface {
	ListByOwner(ctx context.Context, ownerID string) ([]applications.Application, error)
}

type Handler struct {
	store Store
	cache *ListCache
	apps  AppsReader
}

func Register(rg gin.IRouter, store Store, cache *ListCache, apps AppsReader) {
	h := &Handler{store: store, cache: cache, apps: apps}

	rg.GET("/share", h.manage)
	rg.POST("/share/invites", h.invite)
	rg.GET("/shared/:shared_id", h.view)
	rg.POST("/shared/:shared_id/respond", h.respond)
	rg.GET("/shared-with-me", h.sharedWithMe)
}

// manage is the owner view: the list is created lazily on first visit, so
// the share link only exists once creation has resolved.
func (h *Handler) manage(c *gin.Context) {
	userID := auth.UserDBID(c)
	list, err := h.store.EnsureList(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[sharing] ensure list user=%s error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load shared list"})
		return
	}

	invites, err := h.store.ListInvites(c.Request.Context(), list.ID)
	if err != nil {
		log.Printf("[sharing] list invites list=%s error=%v", list.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load invites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"list":       list,
		"share_link": list.ShareLink(),
		"invites":    invites,
	})
}

type inviteReq struct {
	Email string `json:"email"`
}

func (h *Handler) invite(c *gin.Context) {
	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	email := strings.TrimSpace(req.Email)

	// Self-invite guard: rejected before any row is touched.
	if strings.EqualFold(email, strings.TrimSpace(auth.UserEmail(c))) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ErrSelfInvite.Error()})
		return
	}

	userID := auth.UserDBID(c)
	list, err := h.store.EnsureList(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[sharing] ensure list user=%s error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load shared list"})
		return
	}

	inv, err := h.store.CreateInvite(c.Request.Context(), list.ID, email)
	if errors.Is(err, ErrDuplicateInvite) {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": ErrDuplicateInvite.Error(), "duplicate": true})
		return
	}
	if err != nil {
		log.Printf("[sharing] create invite list=%s error=%v", list.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to send invite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "invite": inv})
}

// resolveList goes through the cache first; lists never change once
// created, so a hit is always safe to trust.
func (h *Handler) resolveList(c *gin.Context, publicID string) (*SharedList, error) {
	if list, ok := h.cache.Get(c.Request.Context(), publicID); ok {
		return list, nil
	}

	list, err := h.store.GetListByPublicID(c.Request.Context(), publicID)
	if err != nil {
		return nil, err
	}
	h.cache.Put(c.Request.Context(), list)
	return list, nil
}

// view is the invitee side of a share link. The public id alone grants
// nothing: without a matching invite row the caller is unauthorized even
// when the list exists.
func (h *Handler) view(c *gin.Context) {
	publicID := c.Param("shared_id")

	list, err := h.resolveList(c, publicID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unauthorized"})
		return
	}
	if err != nil {
		log.Printf("[sharing] resolve list public_id=%s error=%v", publicID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load shared list"})
		return
	}

	inv, err := h.store.GetInvite(c.Request.Context(), list.ID, auth.UserEmail(c))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unauthorized"})
		return
	}
	if err != nil {
		log.Printf("[sharing] get invite list=%s error=%v", list.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load invite"})
		return
	}

	resp := gin.H{"ok": true, "status": inv.Status}

	if inv.Status == InviteAccepted {
		items, err := h.apps.ListByOwner(c.Request.Context(), list.OwnerID)
		if err != nil {
			log.Printf("[sharing] shared applications list=%s error=%v", list.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load applications"})
			return
		}
		resp["applications"] = items
	}

	c.JSON(http.StatusOK, resp)
}

type respondReq struct {
	Decision string `json:"decision"`
}

func (h *Handler) respond(c *gin.Context) {
	publicID := c.Param("shared_id")

	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	decision, err := ParseInviteStatus(req.Decision)
	if err != nil || !IsTransitionAllowed(InvitePending, decision) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "decision must be accepted or declined"})
		return
	}

	list, err := h.resolveList(c, publicID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unauthorized"})
		return
	}
	if err != nil {
		log.Printf("[sharing] resolve list public_id=%s error=%v", publicID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load shared list"})
		return
	}

	inv, err := h.store.RespondToInvite(c.Request.Context(), list.ID, auth.UserEmail(c), decision)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unauthorized"})
		return
	case errors.Is(err, ErrInviteResolved):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": ErrInviteResolved.Error()})
		return
	case err != nil:
		log.Printf("[sharing] respond list=%s error=%v", list.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update invite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "invite": inv})
}

func (h *Handler) sharedWithMe(c *gin.Context) {
	email := auth.UserEmail(c)
	rows, err := h.store.SharedWithMe(c.Request.Context(), email)
	if err != nil {
		log.Printf("[sharing] shared-with-me email=%s error=%v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load shared lists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "shared_lists": rows})
}
