package handler

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostMetricHandler struct {
	metricSvc service.PostMetricService
}

func NewPostMetricHandler(metricSvc service.PostMetricService) *PostMetricHandler {
	return &PostMetricHandler{metricSvc: metricSvc}
}

// GetTrend 帖子最近 7/30 天互动趋势
func (s *PostMetricHandler) GetTrend(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	trend, err := s.metricSvc.GetPostTrend(c.Request.Context(), postID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}
