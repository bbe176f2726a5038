package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/services"
)

func TestContainerHandler_ListContainers(t *testing.T) {
	t.Run("successful list", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)

		c := sampleContainer()
		svc.On("View", mock.Anything).Return(sampleDashboard(c))

		ctx := setupTestContext("GET", "/api/v1/containers", nil)
		handler.ListContainers(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response struct {
			Items []struct {
				ID           uuid.UUID          `json:"id"`
				ContainerNo  string             `json:"container_no"`
				Risk         int                `json:"risk"`
				Indicator    string             `json:"indicator"`
				Presentation model.Presentation `json:"presentation"`
			} `json:"items"`
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		require.Len(t, response.Items, 1)
		assert.Equal(t, 1, response.Total)
		assert.Equal(t, c.ID, response.Items[0].ID)
		assert.Equal(t, 1, response.Items[0].Risk)
		assert.Equal(t, "warning", response.Items[0].Indicator)
		assert.Equal(t, "Arrived at Port", response.Items[0].Presentation.Label)
		svc.AssertExpectations(t)
	})

	t.Run("load failure keeps rows", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)

		d := sampleDashboard(sampleContainer())
		d.Error = "record store list failed: timeout"
		svc.On("View", mock.Anything).Return(d)

		ctx := setupTestContext("GET", "/api/v1/containers", nil)
		handler.ListContainers(ctx)

		assert.Equal(t, 502, ctx.Response.StatusCode())
		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Len(t, response["items"], 1)
		assert.Equal(t, d.Error, response["error"])
	})
}

func TestContainerHandler_CreateContainer(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)

		created := sampleContainer()
		svc.On("Submit", mock.Anything, mock.MatchedBy(func(r model.ContainerCreateRequest) bool {
			return r.ContainerNo == "MSKU1234567" && r.Status == "Arrived"
		}), (*model.Attachment)(nil)).Return(created, nil)

		body, _ := json.Marshal(map[string]string{
			"container_no": "MSKU1234567",
			"consignee":    "Acme Corp",
			"status":       "Arrived",
			"lfd":          created.LFD.String(),
		})
		ctx := setupTestContext("POST", "/api/v1/containers", body)
		ctx.Request.Header.SetContentType("application/json")
		handler.CreateContainer(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, created.ID.String(), response["id"])
		assert.EqualValues(t, 1, response["risk"])
		_, hasFile := response["file_url"]
		assert.False(t, hasFile)
		svc.AssertExpectations(t)
	})

	t.Run("multipart with file", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)

		svc.On("Submit", mock.Anything, mock.Anything, mock.MatchedBy(func(f *model.Attachment) bool {
			return f != nil && f.Filename == "bl.pdf" && string(f.Content) == "%PDF"
		})).Return(sampleContainer(), nil)

		ctx := setupMultipartContext("/api/v1/containers", map[string]string{
			"container_no": "MSKU1234567",
			"consignee":    "Acme Corp",
		}, "bl.pdf", []byte("%PDF"))
		handler.CreateContainer(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)

		ctx := setupTestContext("POST", "/api/v1/containers", []byte("{nope"))
		ctx.Request.Header.SetContentType("application/json")
		handler.CreateContainer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	errCases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &model.ValidationError{Field: "consignee", Message: "is required"}, 400},
		{"in flight", services.ErrSubmitInFlight, 409},
		{"upload", &services.BlobError{Name: "bl.pdf", Err: errors.New("denied")}, 502},
		{"insert", &services.StoreError{Op: "insert", Err: errors.New("down")}, 502},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			handler := NewContainerHandler(svc, 1024)
			svc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			ctx := setupFormContext("/api/v1/containers", "container_no=X&consignee=Y")
			handler.CreateContainer(ctx)

			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			var response map[string]string
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
			assert.Equal(t, tc.err.Error(), response["error"])
		})
	}
}

func TestContainerHandler_DeleteContainer(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)
		id := uuid.New()
		svc.On("Delete", mock.Anything, id, true).Return(nil)

		ctx := setupTestContext("DELETE", "/api/v1/containers/"+id.String()+"?confirm=true", nil)
		ctx.SetUserValue("id", id.String())
		handler.DeleteContainer(ctx)

		assert.Equal(t, 204, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("not confirmed", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)
		id := uuid.New()
		svc.On("Delete", mock.Anything, id, false).Return(services.ErrDeleteCanceled)

		ctx := setupTestContext("DELETE", "/api/v1/containers/"+id.String(), nil)
		ctx.SetUserValue("id", id.String())
		handler.DeleteContainer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)
		id := uuid.New()
		svc.On("Delete", mock.Anything, id, true).
			Return(&services.StoreError{Op: "delete", Err: services.ErrNotFound})

		ctx := setupTestContext("DELETE", "/api/v1/containers/"+id.String()+"?confirm=true", nil)
		ctx.SetUserValue("id", id.String())
		handler.DeleteContainer(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(MockDashboardService)
		handler := NewContainerHandler(svc, 1024)

		ctx := setupTestContext("DELETE", "/api/v1/containers/42?confirm=true", nil)
		ctx.SetUserValue("id", "42")
		handler.DeleteContainer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContainerHandler_RefreshContainers(t *testing.T) {
	svc := new(MockDashboardService)
	handler := NewContainerHandler(svc, 1024)

	d := sampleDashboard(sampleContainer())
	d.RefreshCount = 3
	svc.On("Refresh", mock.Anything).Return(nil)
	svc.On("Snapshot").Return(d)

	ctx := setupTestContext("POST", "/api/v1/containers/refresh", nil)
	handler.RefreshContainers(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	var response map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.EqualValues(t, 3, response["refresh_count"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 404, statusFor(&services.StoreError{Op: "delete", Err: services.ErrNotFound}))
	assert.Equal(t, 502, statusFor(&services.StoreError{Op: "list", Err: errors.New("x")}))
	assert.Equal(t, 400, statusFor(services.ErrDeleteCanceled))
	assert.Equal(t, 500, statusFor(errors.New("unexpected")))
}
