package handlers

import (
	"net/http"

	"turf-booking/internal/services"
	"turf-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type CommunityHandler struct {
	groups *services.CommunityService
}

func NewCommunityHandler(groups *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{groups: groups}
}

// CreateGroup - POST /community-group
func (h *CommunityHandler) CreateGroup(e *core.RequestEvent) error {
	var group models.CommunityGroup
	if err := e.BindBody(&group); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	created, err := h.groups.Create(e.Request.Context(), &group)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, created)
}

// ListGroups - GET /community-group
func (h *CommunityHandler) ListGroups(e *core.RequestEvent) error {
	groups, err := h.groups.List(e.Request.Context())
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, groups)
}

// GetGroup - GET /community-group/{id}
func (h *CommunityHandler) GetGroup(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	group, err := h.groups.Get(e.Request.Context(), id)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, group)
}

// UpdateGroup - PUT /community-group/{id}
func (h *CommunityHandler) UpdateGroup(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var group models.CommunityGroup
	if err := e.BindBody(&group); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	group.ID = id

	updated, err := h.groups.Update(e.Request.Context(), &group)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, updated)
}

// DeleteGroup - DELETE /community-group/{id}
func (h *CommunityHandler) DeleteGroup(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.groups.Delete(e.Request.Context(), id); err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}
