package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Container struct {
	ID              uuid.UUID `json:"id"`
	ContainerNo     string    `json:"container_no"`
	Consignee       string    `json:"consignee"`
	DestinationPort *string   `json:"destination_port,omitempty"`
	CargoDesc       *string   `json:"cargo_desc,omitempty"`
	Broker          *string   `json:"broker,omitempty"`
	Status          Status    `json:"status"`
	ETD             *Date     `json:"etd,omitempty"`
	ETA             *Date     `json:"eta,omitempty"`
	LFD             *Date     `json:"lfd,omitempty"`
	FileURL         *string   `json:"file_url,omitempty"`
	FileName        *string   `json:"file_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Risk is recomputed on every call, it depends on now.
func (c *Container) Risk(now time.Time) RiskTier {
	return Classify(c.LFD, c.Status, now)
}

// ContainerCreateRequest is the raw input of the creation form. Dates are
// kept as entered so a failed submit can be redisplayed untouched.
type ContainerCreateRequest struct {
	ContainerNo     string `json:"container_no"`
	Consignee       string `json:"consignee"`
	DestinationPort string `json:"destination_port"`
	CargoDesc       string `json:"cargo_desc"`
	Broker          string `json:"broker"`
	Status          string `json:"status"`
	ETD             string `json:"etd"`
	ETA             string `json:"eta"`
	LFD             string `json:"lfd"`
}

// Validate checks the request without touching any store and returns the
// record it describes. File fields are left for the caller to fill.
func (p ContainerCreateRequest) Validate() (*Container, error) {
	c := &Container{
		ContainerNo:     strings.TrimSpace(p.ContainerNo),
		Consignee:       strings.TrimSpace(p.Consignee),
		DestinationPort: optional(p.DestinationPort),
		CargoDesc:       optional(p.CargoDesc),
		Broker:          optional(p.Broker),
		Status:          Status(strings.TrimSpace(p.Status)),
	}
	if c.ContainerNo == "" {
		return nil, &ValidationError{Field: "container_no", Message: "is required"}
	}
	if c.Consignee == "" {
		return nil, &ValidationError{Field: "consignee", Message: "is required"}
	}
	if c.Status == "" {
		c.Status = DefaultStatus
	}
	if !c.Status.Valid() {
		return nil, &ValidationError{Field: "status", Value: p.Status, Message: "is not a known status"}
	}

	var err error
	if c.ETD, err = optionalDate("etd", p.ETD); err != nil {
		return nil, err
	}
	if c.ETA, err = optionalDate("eta", p.ETA); err != nil {
		return nil, err
	}
	if c.LFD, err = optionalDate("lfd", p.LFD); err != nil {
		return nil, err
	}
	return c, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalDate(field, s string) (*Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, &ValidationError{Field: field, Value: s, Message: "must be a YYYY-MM-DD date"}
	}
	return &d, nil
}

// Attachment is a document uploaded together with a new record.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ValidationError is returned before any network call when the input is
// not acceptable.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil && e.Value != "" {
		return fmt.Sprintf("%s %s (got %q)", e.Field, e.Message, fmt.Sprint(e.Value))
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
