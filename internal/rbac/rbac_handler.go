package rbac

import (
	"net/http"

	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type permissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Capabilities lists the static capability set per role, mostly for operator
// tooling and frontend menu gating.
func (h *Handler) Capabilities(c *gin.Context) {
	out := map[string][]permissionResponse{}
	for _, role := range []Role{RoleOwner, RoleStaff, RoleMember} {
		perms := Capabilities(role)
		list := make([]permissionResponse, len(perms))
		for i, p := range perms {
			list[i] = permissionResponse{Resource: p.Resource, Action: p.Action}
		}
		out[string(role)] = list
	}
	response.Success(c, http.StatusOK, out, nil)
}
