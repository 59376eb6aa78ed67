package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/job-analysis/backend/internal/model"
	"github.com/job-analysis/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// AddUser godoc
// @Summary Add a user
// @Description Inserts a user and its prompts. A duplicate email still answers 200, distinguished only by the message.
// @Tags user
// @Accept json
// @Produce json
// @Param request body model.AddUserRequest true "User payload"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Security BearerAuth
// @Router /job_analysis/user/adduser [post]
func (h *UserHandler) AddUser(c *gin.Context) {
	var req model.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	created, err := h.svc.AddUser(c.Request.Context(), req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, model.MessageResponse{
			StatusCode: http.StatusOK,
			Message:    "success",
			Details:    "User already exists !!",
		})
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "User Added Successfully",
	})
}

// Login godoc
// @Summary Login
// @Description Verifies the credential and returns the user with company and role data plus a bearer token.
// @Tags user
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 404 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Router /job_analysis/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		StatusCode:  http.StatusOK,
		Message:     "success",
		User:        user,
		TokenType:   "Bearer",
		AccessToken: token,
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partial field update; the prompts list replaces the user's prompt set wholesale.
// @Tags user
// @Accept json
// @Produce json
// @Param request body model.UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Security BearerAuth
// @Router /job_analysis/user/updateuser [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	if err := h.svc.UpdateUser(c.Request.Context(), req); err != nil {
		writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "User Updated Successfully",
	})
}

// DeleteUser godoc
// @Summary Delete a user (soft)
// @Description Marks the user inactive. Repeated calls are no-ops.
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Security BearerAuth
// @Router /job_analysis/user/deleteuser/{id} [put]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "invalid user id")
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "User Deleted Successfully",
	})
}

// Me godoc
// @Summary Current user
// @Description Returns the email the gate resolved from the bearer token.
// @Tags user
// @Produce json
// @Success 200 {object} model.MeResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Security BearerAuth
// @Router /job_analysis/user/me [post]
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, model.MeResponse{
		StatusCode: http.StatusOK,
		Message:    "success",
		Data:       AuthSubject(c),
	})
}

// GetAllUsers godoc
// @Summary List active users of a company
// @Description Users with role name, prompts, parse counts and token/cost totals attached.
// @Tags user
// @Produce json
// @Param companyId path int true "Company ID"
// @Success 200 {object} model.UsersListResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Security BearerAuth
// @Router /job_analysis/user/getallusers/{companyId} [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		writeBadRequest(c, "invalid company id")
		return
	}

	users, err := h.svc.ListCompanyUsers(c.Request.Context(), companyID)
	if err != nil {
		writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.UsersListResponse{
		StatusCode: http.StatusOK,
		Message:    "success",
		UsersList:  users,
	})
}

// GetAllInactiveUsers godoc
// @Summary List inactive users
// @Description Soft-deleted users across all companies, composed without usage totals.
// @Tags user
// @Produce json
// @Success 200 {object} model.InactiveUsersListResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Security BearerAuth
// @Router /job_analysis/user/getallinactiveusers [get]
func (h *UserHandler) GetAllInactiveUsers(c *gin.Context) {
	users, err := h.svc.ListInactiveUsers(c.Request.Context())
	if err != nil {
		writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.InactiveUsersListResponse{
		StatusCode: http.StatusOK,
		Message:    "success",
		UsersList:  users,
	})
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, model.MessageResponse{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	})
}

func writeUserError(c *gin.Context, err error) {
	switch err {
	case service.ErrMissingUserID:
		writeBadRequest(c, "User ID missing")
	case service.ErrUserNotFound:
		c.JSON(http.StatusNotFound, model.MessageResponse{
			StatusCode: http.StatusNotFound,
			Message:    "User not found",
		})
	case service.ErrWrongPassword:
		c.JSON(http.StatusUnauthorized, model.MessageResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    "Wrong password",
		})
	default:
		c.JSON(http.StatusInternalServerError, model.MessageResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "server error",
		})
	}
}
