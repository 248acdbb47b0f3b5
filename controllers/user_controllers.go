package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-orders/menu"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type UserController struct {
	Users *services.UserService
	Menu  *menu.Registry
}

func NewUserController(users *services.UserService, registry *menu.Registry) *UserController {
	return &UserController{Users: users, Menu: registry}
}

// Home is the public landing page.
func (uc *UserController) Home(c *gin.Context) {
	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusOK, "Menu", uc.Menu.Items())
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{"Menu": uc.Menu.Items()})
}

func (uc *UserController) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up"})
}

// Signup registers a regular user account.
func (uc *UserController) Signup(c *gin.Context) {
	var input struct {
		Username string `form:"username" json:"username" binding:"required"`
		Email    string `form:"email" json:"email" binding:"required,email"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		if utils.WantsJSON(c) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		redirectWithFlash(c, "/signup", session.Danger, "Please provide a username, a valid email and a password.")
		return
	}

	user, err := uc.Users.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		status, message := http.StatusInternalServerError, msgDatabaseError
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			status, message = http.StatusConflict, "Username or Email already exists!"
		case errors.Is(err, services.ErrInvalidUser):
			status, message = http.StatusBadRequest, "Please provide a username, a valid email and a password."
		case errors.Is(err, services.ErrUnavailable):
			status = http.StatusServiceUnavailable
		}
		if utils.WantsJSON(c) {
			utils.RespondError(c, status, errors.New(message))
			return
		}
		redirectWithFlash(c, "/signup", session.Danger, message)
		return
	}

	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusCreated, "User registered", user)
		return
	}
	redirectWithFlash(c, "/login", session.Success, "Account created! Please log in.")
}

func (uc *UserController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

// Login checks the credentials and stores the user id in the session.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `form:"email" json:"email" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		uc.loginFailed(c, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	user, err := uc.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.InfoLogger.WithField("ip", c.ClientIP()).Warn("failed login attempt")
		uc.loginFailed(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	case err != nil:
		uc.loginFailed(c, http.StatusServiceUnavailable, msgDatabaseError)
		return
	}

	sess := session.Get(c)
	sess.SetUserID(user.ID)
	utils.InfoLogger.WithField("user_id", user.ID).Info("user logged in")

	if utils.WantsJSON(c) {
		_ = sess.Save(c)
		utils.RespondJSON(c, http.StatusOK, "Logged in", user)
		return
	}
	redirectWithFlash(c, "/", session.Success, fmt.Sprintf("Welcome back, %s!", user.Username))
}

func (uc *UserController) loginFailed(c *gin.Context, status int, message string) {
	if utils.WantsJSON(c) {
		utils.RespondError(c, status, errors.New(message))
		return
	}
	redirectWithFlash(c, "/login", session.Danger, message)
}

// Logout forgets the session user.
func (uc *UserController) Logout(c *gin.Context) {
	sess := session.Get(c)
	sess.Clear()

	if utils.WantsJSON(c) {
		_ = sess.Save(c)
		utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
		return
	}
	redirectWithFlash(c, "/login", session.Success, "Logged out successfully.")
}
