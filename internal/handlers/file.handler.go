package handlers

import (
	"errors"
	"path"

	"github.com/swiftport/customs-dashboard/internal/storage"
	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

// FileHandler serves attachments kept by a blob store that can be read
// back, such as the redis one.
type FileHandler struct {
	blobs storage.BlobReader
}

func RegisterFileRoutes(r *xhttp.Router, h *FileHandler) {
	r.GET("/files/{name}", h.GetFile)
}

func NewFileHandler(blobs storage.BlobReader) *FileHandler {
	return &FileHandler{blobs: blobs}
}

func (h *FileHandler) GetFile(ctx *xhttp.RequestCtx) {
	name := pathParam(ctx, "name")
	if name == "" || name != path.Base(name) {
		ctx.Error(xhttp.StatusText(xhttp.StatusNotFound), xhttp.StatusNotFound)
		return
	}

	rc, contentType, err := h.blobs.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			ctx.Error(xhttp.StatusText(xhttp.StatusNotFound), xhttp.StatusNotFound)
			return
		}
		logger.Error("failed to read attachment", "name", name, "error", err)
		ctx.Error(xhttp.StatusText(xhttp.StatusBadGateway), xhttp.StatusBadGateway)
		return
	}

	ctx.Response.Header.Set("Content-Type", contentType)
	ctx.Response.Header.Set("Cache-Control", "private, max-age=86400")
	// fasthttp closes rc once the body is written
	ctx.SetBodyStream(rc, -1)
}
