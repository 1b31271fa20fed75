package audit

import (
	"context"

	"github.com/emilythestrangee/bloglite/backend/internal/logger"
)

const (
	ActionRegister    = "user.register"
	ActionLogin       = "user.login"
	ActionLoginFailed = "user.login_failed"
	ActionLogout      = "user.logout"
	ActionFollow      = "graph.follow"
	ActionUnfollow    = "graph.unfollow"
	ActionPostCreate  = "post.create"
	ActionPostEdit    = "post.edit"
	ActionPostDelete  = "post.delete"
)

const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits an audit entry through the request logger.
func Log(ctx context.Context, action string, userID uint, msg string) {
	l := logger.Ctx(ctx)
	l.Info().
		Str(logger.FieldLogType, logger.LogTypeAudit).
		Str(FieldAction, action).
		Uint(logger.FieldUserID, userID).
		Msg(msg)
}

// LogWithDetail is Log plus a free-form detail field (target username, post id).
func LogWithDetail(ctx context.Context, action string, userID uint, detail string, msg string) {
	l := logger.Ctx(ctx)
	l.Info().
		Str(logger.FieldLogType, logger.LogTypeAudit).
		Str(FieldAction, action).
		Uint(logger.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
