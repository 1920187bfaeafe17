package gym

import (
	"net/http"

	"go-gym/internal/bootstrap"
	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	audit   bootstrap.AuditLogger
}

func NewHandler(service Service, audit bootstrap.AuditLogger) *Handler {
	return &Handler{service: service, audit: audit}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	gymID := c.GetString("gym_id")

	resp, err := h.service.GetByID(c.Request.Context(), gymID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCredential(c *gin.Context) {
	gymID := c.GetString("gym_id")

	resp, err := h.service.GetCredential(c.Request.Context(), gymID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RotateCredential(c *gin.Context) {
	gymID := c.GetString("gym_id")

	resp, err := h.service.RotateCredential(c.Request.Context(), gymID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Log(c.Request.Context(), bootstrap.AuditLog{
			Action:  "gym.credential.rotated",
			Message: "QR credential rotated, previous tokens revoked",
			Meta: map[string]any{
				"gym_id":   gymID,
				"actor_id": c.GetString("user_id"),
			},
		})
	}
	response.Success(c, http.StatusCreated, resp, nil)
}
