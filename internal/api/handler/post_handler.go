package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// CreatePost 发布帖子
func (s *PostHandler) CreatePost(c *gin.Context) {
	memberID := c.GetUint64("member_id")

	var req dto.PostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), memberID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// GetPostDetail 帖子详情，按去重窗口计浏览量
func (s *PostHandler) GetPostDetail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("member_id")

	post, err := s.postSvc.GetPostDetail(c.Request.Context(), viewerID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// ToggleLike 点赞/取消点赞切换
func (s *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	memberID := c.GetUint64("member_id")

	state, err := s.postSvc.ToggleLike(c.Request.Context(), memberID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// UpdatePost 修改帖子
func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	memberID := c.GetUint64("member_id")

	var req dto.PostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	req.ID = postID

	if err := s.postSvc.UpdatePost(c.Request.Context(), memberID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeletePost 删除帖子
func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	memberID := c.GetUint64("member_id")

	if err := s.postSvc.DeletePost(c.Request.Context(), memberID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPosts 最新帖子列表
func (s *PostHandler) ListPosts(c *gin.Context) {
	page, pageSize := parsePage(c)

	result, err := s.postSvc.ListPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMemberPosts 某会员的帖子列表
func (s *PostHandler) ListMemberPosts(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePage(c)

	result, err := s.postSvc.ListPostsByMember(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListHashtagPosts 按标签检索帖子
func (s *PostHandler) ListHashtagPosts(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePage(c)

	result, err := s.postSvc.ListPostsByHashtag(c.Request.Context(), name, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetLikedPosts 我点赞过的帖子
func (s *PostHandler) GetLikedPosts(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	page, pageSize := parsePage(c)

	posts, err := s.postSvc.GetLikedPosts(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func parsePage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
