package util

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const thumbnailWidth = 320

// MakeThumbnail 生成等比缩略图，宽度固定为 320
func MakeThumbnail(reader io.Reader) (*bytes.Buffer, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("图片解码失败: %w", err)
	}

	bounds := img.Bounds()
	var thumb image.Image
	if bounds.Dx() > thumbnailWidth {
		thumb = imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	} else {
		thumb = img
	}

	buf := new(bytes.Buffer)
	if err = imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("缩略图编码失败: %w", err)
	}
	return buf, nil
}
