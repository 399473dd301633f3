package handler

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"bytes"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload 上传帖子配图，同时生成并上传缩略图
func (s *ImageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}

	contentType := util.GetSafeContentType(data)
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	base := time.Now().Format("2006/01/02/") + uuid.NewString()
	objectName := base + ext
	thumbName := base + "_thumb.jpg"

	ctx := c.Request.Context()
	fileKey, err := minio.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	thumbURL := ""
	thumb, err := util.MakeThumbnail(bytes.NewReader(data))
	if err != nil {
		log.WarnContext(ctx, "缩略图生成失败", "object", objectName, "err", err)
	} else {
		thumbKey, err := minio.UploadFile(ctx, thumbName, thumb, int64(thumb.Len()), "image/jpeg")
		if err != nil {
			log.WarnContext(ctx, "缩略图上传失败", "object", thumbName, "err", err)
		} else {
			thumbURL = minio.GetPublicURL(thumbKey)
		}
	}

	response.Success(c, map[string]interface{}{
		"url":           minio.GetPublicURL(fileKey),
		"thumbnail_url": thumbURL,
		"mime":          contentType,
		"size":          file.Size,
	})
}
