package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/foodshare/app/resources"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/pkg/bind"
	"github.com/shashiranjanraj/foodshare/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.service.Register(input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"user":   resources.User(user),
		"tokens": tokens,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.service.Login(input.Email, input.Password)
	if err != nil {
		// Credential failures come back as a 401, not a field error.
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	response.Success(w, map[string]interface{}{
		"user":   resources.User(user),
		"tokens": tokens,
	})
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Refresh string `json:"refresh" validate:"required"`
	}
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tokens, err := c.service.Refresh(input.Refresh)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	response.Success(w, map[string]interface{}{"tokens": tokens})
}

// Logout is a stateless acknowledgement: tokens are not tracked server-side,
// the client simply discards them.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"message": "Logged out"})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	response.Success(w, resources.User(*user))
}

func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.ProfileInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := c.service.UpdateProfile(user.ID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.User(updated))
}

func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.ValidationError(w, map[string]string{"token": "The token field is required."})
		return
	}

	user, err := c.service.VerifyEmail(token)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"message": "Email verified",
		"user":    resources.User(user),
	})
}

// Users is the Admin-only account directory.
func (c *AuthController) Users(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pagination, err := c.service.Users(page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Paginated(w, resources.Users(users), pagination)
}
