package handlers

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/services"
	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
)

type ContainerHandler struct {
	svc            DashboardService
	maxUploadBytes int
}

func RegisterContainerRoutes(g *xhttp.Group, h *ContainerHandler) {
	g.GET("/containers", h.ListContainers)
	g.POST("/containers", h.CreateContainer)
	g.POST("/containers/refresh", h.RefreshContainers)
	g.DELETE("/containers/{id}", h.DeleteContainer)
}

func NewContainerHandler(svc DashboardService, maxUploadBytes int) *ContainerHandler {
	return &ContainerHandler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListContainers answers 502 with the last known rows when the store could
// not be reached.
func (h *ContainerHandler) ListContainers(ctx *xhttp.RequestCtx) {
	d := h.svc.View(ctx)
	status := xhttp.StatusOK
	if d.Error != "" {
		status = xhttp.StatusBadGateway
	}
	writeJSON(ctx, status, d)
}

func (h *ContainerHandler) CreateContainer(ctx *xhttp.RequestCtx) {
	var (
		req  model.ContainerCreateRequest
		file *model.Attachment
		err  error
	)
	if bytes.HasPrefix(ctx.Request.Header.ContentType(), []byte("application/json")) {
		if err = readJSON(ctx, &req); err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	} else {
		req, file, err = readCreateForm(ctx, h.maxUploadBytes)
		if err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
	}

	created, err := h.svc.Submit(ctx, req, file)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, services.RenderRow(created, h.svc.Now()))
}

func (h *ContainerHandler) RefreshContainers(ctx *xhttp.RequestCtx) {
	if err := h.svc.Refresh(ctx); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, h.svc.Snapshot())
}

// DeleteContainer requires ?confirm=true, the API counterpart of the
// browser confirmation dialog.
func (h *ContainerHandler) DeleteContainer(ctx *xhttp.RequestCtx) {
	id, err := uuid.Parse(pathParam(ctx, "id"))
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid container id")
		return
	}
	confirmed := query(ctx, "confirm") == "true"

	err = h.svc.Delete(ctx, id, func() bool { return confirmed })
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	ctx.SetStatusCode(xhttp.StatusNoContent)
}
