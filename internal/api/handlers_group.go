package api

import (
	"Inkwell/internal/api/handler"
)

// HandlersGroup 汇总全部 HTTP Handler，供路由装配
type HandlersGroup struct {
	AuthHandler       *handler.AuthHandler
	MemberHandler     *handler.MemberHandler
	PostHandler       *handler.PostHandler
	FollowHandler     *handler.FollowHandler
	ImageHandler      *handler.ImageHandler
	PostMetricHandler *handler.PostMetricHandler
}
