package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-gym/internal/rbac"
	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	legacy  *LegacyToggler
	rdb     *redis.Client
}

func NewHandler(service Service, legacy *LegacyToggler, rdb *redis.Client) *Handler {
	return &Handler{service: service, legacy: legacy, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Scan(c *gin.Context) {
	gymID := c.GetString("gym_id")
	memberID := c.GetString("member_id")
	if memberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"Only members can scan a check-in code", nil)
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Scan(c.Request.Context(), gymID, memberID, req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Manual(c *gin.Context) {
	gymID := c.GetString("gym_id")
	staffUserID := c.GetString("user_id")

	var req ManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Manual(c.Request.Context(), gymID, staffUserID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	gymID := c.GetString("gym_id")
	actorMemberID := c.GetString("member_id")
	role := c.GetString("role")
	canReadAll := role == string(rbac.RoleOwner) || role == string(rbac.RoleStaff)

	resp, err := h.service.History(c.Request.Context(), gymID, actorMemberID, canReadAll)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

// LegacyToggle serves old kiosk builds. In-memory only, no store writes.
func (h *Handler) LegacyToggle(c *gin.Context) {
	memberID := c.GetString("member_id")
	if memberID == "" {
		memberID = c.GetString("user_id")
	}
	if memberID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Member identity is required", nil)
		return
	}

	out := h.legacy.Toggle(memberID)
	response.Success(c, http.StatusOK, out, nil)
}

func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp SessionOutcome) {
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" || h.rdb == nil {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	if payload, err := json.Marshal(resp); err == nil {
		h.rdb.Set(ctx, cacheKey, payload, 24*time.Hour)
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(ctx, lockKey)
	}
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	if lockKey == "" || h.rdb == nil {
		return
	}
	h.rdb.Del(context.WithoutCancel(c.Request.Context()), lockKey)
}
