package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rotisserie/eris"

	"fertiq/pkg/auth/controller"
	"fertiq/pkg/auth/service"
	"fertiq/pkg/middleware"
)

type authCtrl struct{ svc service.AuthService }

func New(svc service.AuthService) controller.AuthController { return &authCtrl{svc: svc} }

type registerReq struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *authCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
	}

	_, err := h.svc.Register(req.Username, req.Email, req.Password)
	switch {
	case err == nil:
	case eris.Is(err, service.ErrFieldsRequired):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "All fields are required.", "redirect": "/registration",
		})
	case eris.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Email already registered.", "redirect": "/registration",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "registration failed"})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Registration successful!", "redirect": "/acountlogin",
	})
}

func (h *authCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if eris.Is(err, service.ErrBadCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Login failed. Check your credentials.", "redirect": "/acountlogin",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged in successfully!", "redirect": "/",
	})
}

func (h *authCtrl) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil {
		_ = h.svc.Logout(ck.Value)
	}
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "", Path: "/", MaxAge: -1})
	return c.JSON(http.StatusOK, map[string]string{
		"message": "You have been logged out.", "redirect": "/acountlogin",
	})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("user_id").(uint)
	name, _ := c.Get("user_name").(string)
	return c.JSON(http.StatusOK, map[string]any{"user_id": uid, "name": name})
}
