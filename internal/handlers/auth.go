package handlers

import (
	"errors"
	"net/http"

	"blog/internal/form"
	"blog/internal/service"
	"blog/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	msgRegistered    = "You have registered successfully!"
	msgLoggedIn      = "You have logged in successfully!"
	msgWrongPassword = "Wrong password!"
	msgNoSuchUser    = "No such user exists!"
	msgUsernameTaken = "This username is already taken."
	msgBadPassword   = "This password cannot be used. Choose one of at most 72 bytes."
	msgUnreadable    = "The submitted form could not be read."
)

// bindForm decodes the posted fields into dst and checks its rules.
// A nil result means dst is valid.
func (h *Handler) bindForm(c *gin.Context, dst form.Form) form.Errors {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("form_bind_failed", "path", c.Request.URL.Path, "err", err)
		}
		return form.Errors{"form": msgUnreadable}
	}
	return h.forms.Validate(dst)
}

func (h *Handler) renderRegister(c *gin.Context, f form.Register, errs form.Errors) {
	f.Password, f.Confirm = "", ""
	h.render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": f, "Errors": errs})
}

func (h *Handler) registerForm(c *gin.Context) {
	h.renderRegister(c, form.Register{}, nil)
}

func (h *Handler) register(c *gin.Context) {
	var f form.Register
	if errs := h.bindForm(c, &f); errs != nil {
		h.renderRegister(c, f, errs)
		return
	}

	_, err := h.services.Register(c.Request.Context(), service.RegisterParams{
		Name:     f.Name,
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	})
	if errors.Is(err, service.ErrUsernameTaken) {
		h.renderRegister(c, f, form.Errors{"username": msgUsernameTaken})
		return
	}
	if errors.Is(err, service.ErrPasswordRejected) {
		h.renderRegister(c, f, form.Errors{"password": msgBadPassword})
		return
	}
	if err != nil {
		h.fail(c, "auth_register_failed", err, "username", f.Username)
		return
	}

	h.flashRedirect(c, session.Success, msgRegistered, "/login")
}

func (h *Handler) renderLogin(c *gin.Context, f form.Login, errs form.Errors) {
	f.Password = ""
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Form": f, "Errors": errs})
}

func (h *Handler) loginForm(c *gin.Context) {
	h.renderLogin(c, form.Login{}, nil)
}

func (h *Handler) login(c *gin.Context) {
	var f form.Login
	if errs := h.bindForm(c, &f); errs != nil {
		h.renderLogin(c, f, errs)
		return
	}

	err := h.services.Authenticate(c.Request.Context(), f.Username, f.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.flashRedirect(c, session.Danger, msgNoSuchUser, "/login")
	case errors.Is(err, service.ErrInvalidPassword):
		if h.log != nil {
			h.log.Infow("auth_login_rejected", "username", f.Username)
		}
		h.flashRedirect(c, session.Danger, msgWrongPassword, "/login")
	case err != nil:
		h.fail(c, "auth_login_failed", err, "username", f.Username)
	default:
		session.Get(c).Login(f.Username)
		h.flashRedirect(c, session.Success, msgLoggedIn, "/")
	}
}

func (h *Handler) logout(c *gin.Context) {
	session.Get(c).Logout()
	h.redirect(c, "/")
}
