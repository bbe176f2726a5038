package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftport/customs-dashboard/internal/model"
)

func strPtr(s string) *string { return &s }

func TestContainerRepository_Create(t *testing.T) {
	repo := NewContainerRepository(NewTestDB(t))
	ctx := context.Background()

	t.Run("create with every field", func(t *testing.T) {
		lfd := model.Date{Year: 2024, Month: time.May, Day: 2}
		etd := model.Date{Year: 2024, Month: time.April, Day: 1}
		c := &model.Container{
			ContainerNo:     "MSKU1234567",
			Consignee:       "Acme Corp",
			DestinationPort: strPtr("Long Beach"),
			CargoDesc:       strPtr("Wigs"),
			Status:          model.StatusArrived,
			ETD:             &etd,
			LFD:             &lfd,
			FileURL:         strPtr("http://files/1.pdf"),
			FileName:        strPtr("bill.pdf"),
		}

		created, err := repo.Create(ctx, c)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.NotZero(t, created.CreatedAt)
		assert.Equal(t, "MSKU1234567", created.ContainerNo)
		assert.Equal(t, model.StatusArrived, created.Status)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		got := list[0]
		assert.Equal(t, created.ID, got.ID)
		require.NotNil(t, got.LFD)
		assert.Equal(t, lfd, *got.LFD)
		assert.Equal(t, etd, *got.ETD)
		assert.Nil(t, got.ETA)
		assert.Equal(t, "bill.pdf", *got.FileName)
		assert.Nil(t, got.Broker)
	})

	t.Run("caller supplied id is ignored", func(t *testing.T) {
		fixed := uuid.New()
		created, err := repo.Create(ctx, &model.Container{ID: fixed, ContainerNo: "X", Consignee: "Y", Status: model.StatusHold})
		require.NoError(t, err)
		assert.NotEqual(t, fixed, created.ID)
	})

	t.Run("duplicate container numbers are allowed", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := repo.Create(ctx, &model.Container{ContainerNo: "DUP1", Consignee: "Acme", Status: model.StatusOnBoard})
			require.NoError(t, err)
		}
	})

	t.Run("nil container", func(t *testing.T) {
		_, err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})
}

func TestContainerRepository_List(t *testing.T) {
	repo := NewContainerRepository(NewTestDB(t))
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	var ids []uuid.UUID
	for _, no := range []string{"A1", "B2", "C3"} {
		c, err := repo.Create(ctx, &model.Container{ContainerNo: no, Consignee: "Acme", Status: model.StatusOnBoard})
		require.NoError(t, err)
		ids = append(ids, c.ID)
		time.Sleep(10 * time.Millisecond)
	}

	t.Run("newest first", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, ids[2], list[0].ID)
		assert.Equal(t, ids[1], list[1].ID)
		assert.Equal(t, ids[0], list[2].ID)
	})

	t.Run("repeated list is stable", func(t *testing.T) {
		first, err := repo.List(ctx)
		require.NoError(t, err)
		second, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestContainerRepository_Delete(t *testing.T) {
	repo := NewContainerRepository(NewTestDB(t))
	ctx := context.Background()

	keep, err := repo.Create(ctx, &model.Container{ContainerNo: "KEEP", Consignee: "Acme", Status: model.StatusOnBoard})
	require.NoError(t, err)
	gone, err := repo.Create(ctx, &model.Container{ContainerNo: "GONE", Consignee: "Acme", Status: model.StatusOnBoard})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, gone.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	t.Run("missing id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, gone.ID), ErrNotFound)
	})
}

func TestContainerRepository_ListTieBreak(t *testing.T) {
	repo := NewContainerRepository(NewTestDB(t))
	ctx := context.Background()

	same := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for _, no := range []string{"A1", "B2", "C3", "D4"} {
		e := &ContainerEntity{ContainerNo: no, Consignee: "Acme", Status: string(model.StatusOnBoard), CreatedAt: same}
		require.NoError(t, repo.Write(ctx).Create(e).Error)
		ids = append(ids, e.ID.String())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	for i := 0; i < 2; i++ {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 4)
		got := make([]string, len(list))
		for j, c := range list {
			got[j] = c.ID.String()
		}
		assert.Equal(t, ids, got, "equal created_at orders by id descending")
	}
}
