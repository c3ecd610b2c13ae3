package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/session"
	"github.com/inkpress/inkpress/store"
	"github.com/inkpress/inkpress/utils"
)

// AuthController handles registration, login and logout for the
// server-rendered forms.
type AuthController struct {
	users    store.UserStore
	sessions *session.Manager
	cfg      config.AppConfig
}

// NewAuthController creates an AuthController.
func NewAuthController(users store.UserStore, sessions *session.Manager, cfg config.AppConfig) *AuthController {
	return &AuthController{users: users, sessions: sessions, cfg: cfg}
}

// RegisterForm shows the registration page.
func (a *AuthController) RegisterForm(ctx *gin.Context) {
	utils.HTML(ctx, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register creates an identity and logs it straight in. Registration and
// session start are two separate steps on purpose: the user store knows
// nothing about sessions.
func (a *AuthController) Register(ctx *gin.Context) {
	username := utils.SanitizePlain(strings.TrimSpace(ctx.PostForm("username")))
	password := ctx.PostForm("password")

	if username == "" || password == "" {
		utils.HTML(ctx, http.StatusBadRequest, "register.html", gin.H{
			"Title": "Register",
			"Error": "username and password are required",
		})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.Sugar.Errorf("hash password: %v", err)
		utils.HTML(ctx, http.StatusInternalServerError, "register.html", gin.H{
			"Title": "Register",
			"Error": "registration failed, please try again",
		})
		return
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := a.users.Create(&user); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			utils.HTML(ctx, http.StatusConflict, "register.html", gin.H{
				"Title": "Register",
				"Error": "User already exists",
			})
			return
		}
		utils.Sugar.Errorf("create user: %v", err)
		utils.HTML(ctx, http.StatusInternalServerError, "register.html", gin.H{
			"Title": "Register",
			"Error": "registration failed, please try again",
		})
		return
	}

	a.startSession(ctx, session.Identity{ID: user.ID, Username: user.Username})
}

// LoginForm shows the login page.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	utils.HTML(ctx, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login verifies credentials and starts a session. An unknown username and
// a wrong password take the identical failure path so neither case leaks.
func (a *AuthController) Login(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	user, err := a.users.FindByUsername(username)
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	a.startSession(ctx, session.Identity{ID: user.ID, Username: user.Username})
}

// Logout ends the current session and clears the cookie. Only a session
// store failure is an error; logging out while logged out just redirects.
func (a *AuthController) Logout(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(a.cfg.CookieName); err == nil {
		if err := a.sessions.End(cookie); err != nil {
			utils.Sugar.Errorf("end session: %v", err)
			ctx.String(http.StatusInternalServerError, "logout failed")
			return
		}
	}
	ctx.SetCookie(a.cfg.CookieName, "", -1, "/", "", a.cfg.CookieSecure, true)
	ctx.Redirect(http.StatusFound, "/")
}

func (a *AuthController) startSession(ctx *gin.Context, identity session.Identity) {
	token, err := a.sessions.Start(identity)
	if err != nil {
		utils.Sugar.Errorf("start session for %s: %v", identity.Username, err)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	maxAge := int(a.sessions.TTL().Seconds())
	ctx.SetCookie(a.cfg.CookieName, token, maxAge, "/", "", a.cfg.CookieSecure, true)
	ctx.Redirect(http.StatusFound, "/")
}
