package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/services"
	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
)

// DashboardService is what the handlers need from the shell.
type DashboardService interface {
	View(ctx context.Context) services.Dashboard
	Snapshot() services.Dashboard
	Refresh(ctx context.Context) error
	OpenForm()
	CloseForm()
	Now() time.Time
	Submit(ctx context.Context, req model.ContainerCreateRequest, file *model.Attachment) (*model.Container, error)
	Delete(ctx context.Context, id uuid.UUID, confirm services.Confirmer) error
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func redirect(ctx *xhttp.RequestCtx, to string) {
	ctx.Response.Header.Set("Location", to)
	ctx.Response.SetStatusCode(xhttp.StatusSeeOther)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func pathParam(ctx *xhttp.RequestCtx, key string) string {
	v, _ := ctx.UserValue(key).(string)
	return v
}

// statusFor maps a service error to the response code.
func statusFor(err error) int {
	var (
		vErr *model.ValidationError
		sErr *services.StoreError
		bErr *services.BlobError
	)
	switch {
	case errors.As(err, &vErr), errors.Is(err, services.ErrDeleteCanceled):
		return xhttp.StatusBadRequest
	case errors.Is(err, services.ErrSubmitInFlight):
		return xhttp.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return xhttp.StatusNotFound
	case errors.As(err, &sErr), errors.As(err, &bErr):
		return xhttp.StatusBadGateway
	default:
		return xhttp.StatusInternalServerError
	}
}

func isMultipart(ctx *xhttp.RequestCtx) bool {
	return bytes.HasPrefix(ctx.Request.Header.ContentType(), []byte("multipart/form-data"))
}

// readCreateForm reads the creation form from a multipart or urlencoded
// body. The attachment is nil when no file was chosen.
func readCreateForm(ctx *xhttp.RequestCtx, maxBytes int) (model.ContainerCreateRequest, *model.Attachment, error) {
	if !isMultipart(ctx) {
		args := ctx.PostArgs()
		get := func(k string) string { return string(args.Peek(k)) }
		return formRequest(get), nil, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return model.ContainerCreateRequest{}, nil, &model.ValidationError{Field: "form", Message: "is not a valid multipart body"}
	}
	get := func(k string) string {
		if v := form.Value[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	req := formRequest(get)

	files := form.File["file"]
	if len(files) == 0 || files[0].Filename == "" {
		return req, nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return req, nil, err
	}
	defer f.Close()

	r := io.Reader(f)
	if maxBytes > 0 {
		// one byte over lets the form report the limit
		r = io.LimitReader(f, int64(maxBytes)+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return req, nil, err
	}
	return req, &model.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func formRequest(get func(string) string) model.ContainerCreateRequest {
	return model.ContainerCreateRequest{
		ContainerNo:     get("container_no"),
		Consignee:       get("consignee"),
		DestinationPort: get("destination_port"),
		CargoDesc:       get("cargo_desc"),
		Broker:          get("broker"),
		Status:          get("status"),
		ETD:             get("etd"),
		ETA:             get("eta"),
		LFD:             get("lfd"),
	}
}
