package subscription

import (
	"net/http"

	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	gymID := c.GetString("gym_id")

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Renew(c *gin.Context) {
	gymID := c.GetString("gym_id")
	id := c.Param("id")

	var req RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Renew(c.Request.Context(), gymID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	gymID := c.GetString("gym_id")

	resp, err := h.service.GetAll(c.Request.Context(), gymID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	gymID := c.GetString("gym_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), gymID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetMine lists the calling member's own subscriptions.
func (h *Handler) GetMine(c *gin.Context) {
	gymID := c.GetString("gym_id")
	memberID := c.GetString("member_id")
	if memberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"No member record linked to this account", nil)
		return
	}

	resp, err := h.service.GetByMember(c.Request.Context(), gymID, memberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
