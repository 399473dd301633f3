package util

import (
	"net/http"
)

// GetSafeContentType 基于文件头嗅探 MIME 类型，不信任客户端声明
func GetSafeContentType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}
