package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"gorm.io/gorm"
)

type ContainerEntity struct {
	ID              uuid.UUID   `db:"id"               gorm:"primaryKey;type:uuid;column:id"`
	ContainerNo     string      `db:"container_no"     gorm:"column:container_no;not null"`
	Consignee       string      `db:"consignee"        gorm:"column:consignee;not null"`
	DestinationPort *string     `db:"destination_port" gorm:"column:destination_port"`
	CargoDesc       *string     `db:"cargo_desc"       gorm:"column:cargo_desc"`
	Broker          *string     `db:"broker"           gorm:"column:broker"`
	Status          string      `db:"status"           gorm:"column:status;not null"`
	ETD             *model.Date `db:"etd"              gorm:"column:etd;type:date"`
	ETA             *model.Date `db:"eta"              gorm:"column:eta;type:date"`
	LFD             *model.Date `db:"lfd"              gorm:"column:lfd;type:date"`
	FileURL         *string     `db:"file_url"         gorm:"column:file_url"`
	FileName        *string     `db:"file_name"        gorm:"column:file_name"`
	CreatedAt       time.Time   `db:"created_at"       gorm:"column:created_at;autoCreateTime;index"`
}

func (ContainerEntity) TableName() string {
	return "containers"
}

// BeforeCreate assigns the id, callers never choose it.
func (e *ContainerEntity) BeforeCreate(*gorm.DB) error {
	e.ID = uuid.New()
	return nil
}

func toContainerEntity(c *model.Container) *ContainerEntity {
	if c == nil {
		return nil
	}
	return &ContainerEntity{
		ContainerNo:     c.ContainerNo,
		Consignee:       c.Consignee,
		DestinationPort: c.DestinationPort,
		CargoDesc:       c.CargoDesc,
		Broker:          c.Broker,
		Status:          string(c.Status),
		ETD:             c.ETD,
		ETA:             c.ETA,
		LFD:             c.LFD,
		FileURL:         c.FileURL,
		FileName:        c.FileName,
	}
}

func toContainerModel(e *ContainerEntity) *model.Container {
	if e == nil {
		return nil
	}
	return &model.Container{
		ID:              e.ID,
		ContainerNo:     e.ContainerNo,
		Consignee:       e.Consignee,
		DestinationPort: e.DestinationPort,
		CargoDesc:       e.CargoDesc,
		Broker:          e.Broker,
		Status:          model.Status(e.Status),
		ETD:             e.ETD,
		ETA:             e.ETA,
		LFD:             e.LFD,
		FileURL:         e.FileURL,
		FileName:        e.FileName,
		CreatedAt:       e.CreatedAt,
	}
}

func toContainerModels(entities []*ContainerEntity) []*model.Container {
	models := make([]*model.Container, len(entities))
	for i, e := range entities {
		models[i] = toContainerModel(e)
	}
	return models
}
