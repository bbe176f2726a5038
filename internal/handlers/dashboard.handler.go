package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/services"
	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"date": func(d *model.Date) string {
		if d == nil || d.IsZero() {
			return ""
		}
		return d.String()
	},
	"present": model.Present,
}).ParseFS(templateFS, "templates/dashboard.html"))

type page struct {
	services.Dashboard
	Title  string
	Notice string
	Form   model.ContainerCreateRequest
	Accept string
}

// DashboardHandler serves the browser UI. Mutations answer with a 303 back
// to the page, failures re-render it with a notice.
type DashboardHandler struct {
	svc            DashboardService
	title          string
	maxUploadBytes int
}

func RegisterDashboardRoutes(r *xhttp.Router, h *DashboardHandler) {
	r.GET("/", h.GetDashboard)
	r.POST("/refresh", h.Refresh)
	r.POST("/containers", h.CreateContainer)
	r.POST("/containers/{id}/delete", h.DeleteContainer)
}

func NewDashboardHandler(svc DashboardService, title string, maxUploadBytes int) *DashboardHandler {
	if title == "" {
		title = "Container tracking"
	}
	return &DashboardHandler{
		svc:            svc,
		title:          title,
		maxUploadBytes: maxUploadBytes,
	}
}

// GetDashboard renders the page. form=open and form=closed toggle the one
// Shell every client shares, so opening the form opens it for all viewers.
func (h *DashboardHandler) GetDashboard(ctx *xhttp.RequestCtx) {
	switch query(ctx, "form") {
	case "open":
		h.svc.OpenForm()
	case "closed":
		h.svc.CloseForm()
	}
	h.render(ctx, xhttp.StatusOK, page{Dashboard: h.svc.View(ctx)})
}

func (h *DashboardHandler) Refresh(ctx *xhttp.RequestCtx) {
	if err := h.svc.Refresh(ctx); err != nil {
		// the page shows the load error itself
		logger.Warn("dashboard refresh failed", "error", err)
	}
	redirect(ctx, "/")
}

func (h *DashboardHandler) CreateContainer(ctx *xhttp.RequestCtx) {
	req, file, err := readCreateForm(ctx, h.maxUploadBytes)
	if err == nil {
		_, err = h.svc.Submit(ctx, req, file)
	}
	if err != nil {
		h.svc.OpenForm()
		h.render(ctx, statusFor(err), page{
			Dashboard: h.svc.Snapshot(),
			Notice:    "Could not save container: " + err.Error(),
			Form:      req,
		})
		return
	}
	redirect(ctx, "/")
}

func (h *DashboardHandler) DeleteContainer(ctx *xhttp.RequestCtx) {
	id, err := uuid.Parse(pathParam(ctx, "id"))
	if err == nil {
		confirmed := string(ctx.PostArgs().Peek("confirm")) == "yes"
		err = h.svc.Delete(ctx, id, func() bool { return confirmed })
	} else {
		err = &model.ValidationError{Field: "id", Value: pathParam(ctx, "id"), Message: "is not a container id"}
	}
	if err != nil {
		h.render(ctx, statusFor(err), page{
			Dashboard: h.svc.Snapshot(),
			Notice:    "Could not delete container: " + err.Error(),
		})
		return
	}
	redirect(ctx, "/")
}

func (h *DashboardHandler) render(ctx *xhttp.RequestCtx, status int, p page) {
	p.Title = h.title
	p.Accept = strings.Join(services.AllowedAttachmentExts, ",")

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, p); err != nil {
		logger.Error("failed to render dashboard", "error", err)
		ctx.Error(xhttp.StatusText(xhttp.StatusInternalServerError), xhttp.StatusInternalServerError)
		return
	}
	ctx.Response.Header.Set("Content-Type", "text/html; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(buf.Bytes())
}
