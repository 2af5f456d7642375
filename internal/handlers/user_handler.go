package handlers

import (
	"net/http"

	"turf-booking/internal/services"
	"turf-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type UserHandler struct {
	players *services.PlayerService
}

func NewUserHandler(players *services.PlayerService) *UserHandler {
	return &UserHandler{players: players}
}

// CreateUser - POST /users
func (h *UserHandler) CreateUser(e *core.RequestEvent) error {
	var player models.Player
	if err := e.BindBody(&player); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	created, err := h.players.Register(e.Request.Context(), &player)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, created)
}

// ListUsers - GET /users
func (h *UserHandler) ListUsers(e *core.RequestEvent) error {
	players, err := h.players.List(e.Request.Context())
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, players)
}

// GetUser - GET /users/{mobileNo}
func (h *UserHandler) GetUser(e *core.RequestEvent) error {
	mobileNo := e.Request.PathValue("mobileNo")

	player, err := h.players.GetByMobile(e.Request.Context(), mobileNo)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, player)
}

// UpdateUser - PUT /users/{id}
func (h *UserHandler) UpdateUser(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var player models.Player
	if err := e.BindBody(&player); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	player.ID = id

	updated, err := h.players.Update(e.Request.Context(), &player)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, updated)
}

// DeleteUser - DELETE /users/{id}
func (h *UserHandler) DeleteUser(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.players.Delete(e.Request.Context(), id); err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

type profileRequest struct {
	Profile string `json:"profile"`
}

// UpdateProfile - PUT /users/profile/{id}
func (h *UserHandler) UpdateProfile(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var req profileRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if req.Profile == "" {
		return apis.NewBadRequestError("Profile image is required", nil)
	}

	updated, err := h.players.UpdateProfile(e.Request.Context(), id, req.Profile)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, updated)
}

type favouriteRequest struct {
	TurfID string `json:"turfId"`
	Mobile string `json:"mobile"`
}

// ToggleFavourite - POST /users/favourites
func (h *UserHandler) ToggleFavourite(e *core.RequestEvent) error {
	var req favouriteRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	favs, err := h.players.ToggleFavourite(e.Request.Context(), req.Mobile, req.TurfID)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"favTurfs": favs})
}

// FavouriteTurfs - GET /users/favs/{mobileno}
func (h *UserHandler) FavouriteTurfs(e *core.RequestEvent) error {
	mobileNo := e.Request.PathValue("mobileno")

	turfs, err := h.players.FavouriteTurfs(e.Request.Context(), mobileNo)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, turfs)
}
