package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events that matter after the fact, like
// server lifecycle transitions. Not a replacement for request logging.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
