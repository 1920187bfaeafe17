package analytics

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

// MyStats returns the calling member's own numbers.
func (h *Handler) MyStats(c *gin.Context) {
	gymID := c.GetString("gym_id")
	memberID := c.GetString("member_id")
	if memberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"No member record linked to this account", nil)
		return
	}

	resp, err := h.service.MemberStats(c.Request.Context(), gymID, memberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MemberStats(c *gin.Context) {
	gymID := c.GetString("gym_id")
	memberID := c.Param("id")

	resp, err := h.service.MemberStats(c.Request.Context(), gymID, memberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Leaderboard(c *gin.Context) {
	gymID := c.GetString("gym_id")

	resp, err := h.service.Leaderboard(c.Request.Context(), gymID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Revenue(c *gin.Context) {
	gymID := c.GetString("gym_id")

	resp, err := h.service.Revenue(c.Request.Context(), gymID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
