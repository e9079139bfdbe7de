package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
	"github.com/zjy19901124/rallyroo-rc-store/internal/storage"
)

const maxImageBytes = 10 << 20 // 10 MiB

type ImagesHandler struct {
	Storage storage.Storage
}

func NewImagesHandler(st storage.Storage) *ImagesHandler {
	return &ImagesHandler{Storage: st}
}

// POST /api/admin/images (multipart, field "file")
func (h *ImagesHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Missing file.", nil))
		return
	}
	if fh.Size > maxImageBytes {
		middleware.Fail(c, apperr.InvalidErr("File too large.", nil))
		return
	}

	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		middleware.Fail(c, apperr.InvalidErr("Only image uploads are accepted.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": res.Key,
		"url": res.URL,
	})
}
