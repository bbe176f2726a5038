package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/storage"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

// AllowedAttachmentExts are the document types the form accepts.
var AllowedAttachmentExts = []string{".pdf", ".xlsx", ".xls", ".jpg", ".png"}

// CreationForm turns a submitted form into a stored container, uploading the
// optional attachment first.
type CreationForm struct {
	records        ContainerStore
	blobs          storage.BlobStore
	clock          Clock
	timeout        time.Duration
	maxUploadBytes int

	inFlight  atomic.Bool
	onSuccess func(ctx context.Context, c *model.Container)
}

func NewCreationForm(records ContainerStore, blobs storage.BlobStore, timeout time.Duration, maxUploadBytes int) *CreationForm {
	return &CreationForm{
		records:        records,
		blobs:          blobs,
		clock:          time.Now,
		timeout:        timeout,
		maxUploadBytes: maxUploadBytes,
	}
}

// OnSuccess registers the callback fired after an insert succeeds.
func (f *CreationForm) OnSuccess(fn func(ctx context.Context, c *model.Container)) {
	f.onSuccess = fn
}

// Busy reports whether a submission is in flight, the submit control is
// disabled meanwhile.
func (f *CreationForm) Busy() bool {
	return f.inFlight.Load()
}

// Submit validates, uploads the attachment if any, and inserts the record.
// Nothing is inserted when the upload fails.
func (f *CreationForm) Submit(ctx context.Context, req model.ContainerCreateRequest, file *model.Attachment) (*model.Container, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer f.inFlight.Store(false)

	c, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if file != nil && len(file.Content) == 0 {
		file = nil
	}
	if file != nil {
		if err = f.validateAttachment(file); err != nil {
			return nil, err
		}
	}

	opCtx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()

	if file != nil {
		name := storage.UniqueName(file.Filename, f.clock())
		start := time.Now()
		err = f.blobs.Upload(opCtx, name, file.Content, file.ContentType)
		observeStoreOp("upload", start, err)
		if err != nil {
			logger.Error("attachment upload failed", "name", name, "file_name", file.Filename, "error", err)
			return nil, &BlobError{Name: file.Filename, Err: err}
		}
		url := f.blobs.PublicURL(name)
		original := baseName(file.Filename)
		c.FileURL = &url
		c.FileName = &original
	}

	start := time.Now()
	created, err := f.records.Create(opCtx, c)
	observeStoreOp("insert", start, err)
	if err != nil {
		logger.Error("failed to insert container", "container_no", c.ContainerNo, "error", err)
		return nil, &StoreError{Op: "insert", Err: err}
	}

	logger.Info("container created", "id", created.ID, "container_no", created.ContainerNo)
	if f.onSuccess != nil {
		f.onSuccess(ctx, created)
	}
	return created, nil
}

func (f *CreationForm) validateAttachment(file *model.Attachment) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, a := range AllowedAttachmentExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return &model.ValidationError{
			Field:   "file",
			Value:   file.Filename,
			Message: "must be one of " + strings.Join(AllowedAttachmentExts, ", "),
		}
	}
	if f.maxUploadBytes > 0 && len(file.Content) > f.maxUploadBytes {
		return &model.ValidationError{
			Field:   "file",
			Value:   file.Filename,
			Message: fmt.Sprintf("exceeds the %d byte limit", f.maxUploadBytes),
		}
	}
	return nil
}

// baseName drops any directory part of a client supplied filename. Browsers
// on Windows may send C:\fakepath\x.pdf, so both separators count.
func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
