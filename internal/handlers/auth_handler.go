package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/identity"
)

type AuthHandler struct {
	register *identity.Register
	login    *identity.Login
}

func NewAuthHandler(register *identity.Register, login *identity.Login) *AuthHandler {
	return &AuthHandler{register: register, login: login}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,mailbox"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     string  `json:"nombre" binding:"required,notblank"`
	Phone    *string `json:"telefono"`
	Role     string  `json:"rol"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	user, err := h.register.Execute(c.Request.Context(), identity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Usuario creado exitosamente", "usuario", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Login exitoso",
		"usuario": res.User,
		"token":   res.Token,
	})
}
