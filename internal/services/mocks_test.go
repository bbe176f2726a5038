package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/swiftport/customs-dashboard/internal/model"
)

type MockContainerStore struct {
	mock.Mock
}

func (m *MockContainerStore) List(ctx context.Context) ([]*model.Container, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Container), args.Error(1)
}

func (m *MockContainerStore) Create(ctx context.Context, c *model.Container) (*model.Container, error) {
	args := m.Called(ctx, c)
	if fn, ok := args.Get(0).(func(context.Context, *model.Container) *model.Container); ok {
		return fn(ctx, c), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Container), args.Error(1)
}

func (m *MockContainerStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, name string, content []byte, contentType string) error {
	args := m.Called(ctx, name, content, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) PublicURL(name string) string {
	return "https://files.example.com/" + name
}

func fixedClock(t string) Clock {
	now, err := time.Parse(time.RFC3339, t)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return now }
}
