package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/services"
	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
	"github.com/valyala/fasthttp"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) View(ctx context.Context) services.Dashboard {
	return m.Called(ctx).Get(0).(services.Dashboard)
}

func (m *MockDashboardService) Snapshot() services.Dashboard {
	return m.Called().Get(0).(services.Dashboard)
}

func (m *MockDashboardService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDashboardService) OpenForm() { m.Called() }

func (m *MockDashboardService) CloseForm() { m.Called() }

func (m *MockDashboardService) Now() time.Time { return testNow }

func (m *MockDashboardService) Submit(ctx context.Context, req model.ContainerCreateRequest, file *model.Attachment) (*model.Container, error) {
	args := m.Called(ctx, req, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Container), args.Error(1)
}

func (m *MockDashboardService) Delete(ctx context.Context, id uuid.UUID, confirm services.Confirmer) error {
	return m.Called(ctx, id, confirm()).Error(0)
}

type MockBlobReader struct {
	mock.Mock
}

func (m *MockBlobReader) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

// setupMultipartContext builds a multipart request from fields and an
// optional file part named "file".
func setupMultipartContext(path string, fields map[string]string, fileName string, content []byte) *xhttp.RequestCtx {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileName != "" {
		part, _ := w.CreateFormFile("file", fileName)
		_, _ = part.Write(content)
	}
	_ = w.Close()

	ctx := setupTestContext("POST", path, buf.Bytes())
	ctx.Request.Header.SetContentType(w.FormDataContentType())
	return ctx
}

func setupFormContext(path, body string) *xhttp.RequestCtx {
	ctx := setupTestContext("POST", path, []byte(body))
	ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
	return ctx
}

func sampleContainer() *model.Container {
	lfd := model.DateOf(testNow).AddDays(2)
	return &model.Container{
		ID:          uuid.New(),
		ContainerNo: "MSKU1234567",
		Consignee:   "Acme Corp",
		Status:      model.StatusArrived,
		LFD:         &lfd,
		CreatedAt:   testNow,
	}
}

func sampleDashboard(items ...*model.Container) services.Dashboard {
	rows := make([]services.Row, len(items))
	for i, c := range items {
		rows[i] = services.RenderRow(c, testNow)
	}
	return services.Dashboard{
		Rows:     rows,
		Total:    len(rows),
		Today:    model.DateOf(testNow),
		Statuses: model.Statuses,
	}
}
