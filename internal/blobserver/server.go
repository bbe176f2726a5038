package blobserver

import (
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Object is a stored file
type Object struct {
	Content     []byte
	ContentType string
	StoredAt    time.Time
}

// ObjectStore keeps objects in memory
type ObjectStore struct {
	mu       sync.RWMutex
	objects  map[string]Object
	maxBytes int64
	serverID string
}

// NewObjectStore creates an empty store accepting objects up to maxBytes
func NewObjectStore(maxBytes int64) *ObjectStore {
	return &ObjectStore{
		objects:  make(map[string]Object),
		maxBytes: maxBytes,
		serverID: "BLOBSTORE_" + uuid.New().String()[:8],
	}
}

func (s *ObjectStore) Put(name string, obj Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = obj
}

func (s *ObjectStore) Get(name string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[name]
	return obj, ok
}

func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Handler exposes the store over HTTP
type Handler struct {
	store *ObjectStore
}

func NewHandler(store *ObjectStore) *Handler {
	return &Handler{store: store}
}

// PutObject stores the request body under :name
func (h *Handler) PutObject(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.store.maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}
	if int64(len(body)) > h.store.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "object too large"})
		return
	}

	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.store.Put(name, Object{Content: body, ContentType: contentType, StoredAt: time.Now()})

	log.Info().
		Str("name", name).
		Int("size", len(body)).
		Str("content_type", contentType).
		Msg("Object stored")

	c.JSON(http.StatusCreated, gin.H{"name": name, "size": len(body)})
}

// GetObject streams the object back
func (h *Handler) GetObject(c *gin.Context) {
	obj, ok := h.store.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}
	c.Data(http.StatusOK, obj.ContentType, obj.Content)
}

// HeadObject reports whether an object exists
func (h *Handler) HeadObject(c *gin.Context) {
	obj, ok := h.store.Get(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Content-Type", obj.ContentType)
	c.Header("Content-Length", strconv.Itoa(len(obj.Content)))
	c.Status(http.StatusOK)
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"server_id": h.store.serverID,
		"objects":   h.store.Len(),
		"timestamp": time.Now(),
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})

	router.PUT("/objects/:name", handler.PutObject)
	router.GET("/objects/:name", handler.GetObject)
	router.HEAD("/objects/:name", handler.HeadObject)
	router.GET("/health", handler.HealthCheck)

	return router
}
