// Package controllers holds the HTTP boundary: decode, call a service,
// translate the outcome. No business rules live here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
	"github.com/shashiranjanraj/foodshare/pkg/middleware"
	"github.com/shashiranjanraj/foodshare/pkg/response"
)

// currentUser loads the authenticated user. On failure it writes a 401 and
// returns false; the handler must return immediately.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return nil, false
	}
	user, err := repositories.NewUserRepository().FindByID(id)
	if err != nil {
		response.Unauthorized(w)
		return nil, false
	}
	return &user, true
}

// respondError maps a service error onto the HTTP error taxonomy.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		response.ValidationError(w, ve.Fields)
		return
	}
	if ae, ok := apperrors.AsAuthorization(err); ok {
		response.ForbiddenMsg(w, ae.Message)
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		response.NotFound(w)
		return
	}

	logger.WithCtx(r.Context()).Error("request failed", "error", err)
	response.Error(w, http.StatusInternalServerError, "Internal server error")
}

// paramID parses the {id} route parameter.
func paramID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads ?page= and ?limit= with the repository defaults applied
// downstream.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
