package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct{ svc service.DirectoryService }

func NewDirectoryHandler(svc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// CreateClient godoc
// @Summary      Create a client
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateClientRequest true "Client"
// @Success      201  {object} dto.ClientResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/clients [post]
func (h *DirectoryHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListClients godoc
// @Summary      List clients
// @Tags         directory
// @Produce      json
// @Success      200 {array} dto.ClientResponse
// @Router       /v1/clients [get]
func (h *DirectoryHandler) ListClients(c *gin.Context) {
	resp, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateUserRequest true "User"
// @Success      201  {object} dto.UserResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/users [post]
func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListUsers godoc
// @Summary      List active users
// @Tags         directory
// @Produce      json
// @Success      200 {array} dto.UserResponse
// @Router       /v1/users [get]
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
