package handler

import (
	"io"
	"path"
	"strings"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/api/response"
	"pulse-go/internal/service"

	"github.com/gin-gonic/gin"
)

// 图片上传限制
const maxImageSize = int64(10 * 1024 * 1024)

var allowedImageFormats = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// pageRequest 绑定 page/limit 查询参数并规范化
func pageRequest(c *gin.Context) (service.PageRequest, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "分页参数无效: "+err.Error())
		return service.PageRequest{}, false
	}
	return service.NewPageRequest(q.Page, q.Limit), true
}

// pathID 读取路径参数，空值直接返回 400
func pathID(c *gin.Context, name, message string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		response.BadRequest(c, message)
		return "", false
	}
	return id, true
}

// formImage 读取可选的图片字段；未上传时返回 nil，调用方负责关闭返回的 closer
func formImage(c *gin.Context, field string) (*service.Upload, io.Closer, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, nil, true
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if !allowedImageFormats[ext] {
		response.BadRequest(c, "不支持的图片格式，支持: jpg, jpeg, png, gif, webp")
		return nil, nil, false
	}
	if file.Size == 0 || file.Size > maxImageSize {
		response.BadRequest(c, "图片大小无效（不能为空，最大 10MB）")
		return nil, nil, false
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "打开上传文件失败")
		return nil, nil, false
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.Upload{
		Reader:      f,
		Size:        file.Size,
		ContentType: contentType,
		Filename:    file.Filename,
	}, f, true
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
