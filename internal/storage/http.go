package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPBlobStore uploads to an object server speaking
// PUT/GET /objects/{name}, such as cmd/blobstore.
type HTTPBlobStore struct {
	client    *fasthttp.Client
	serverURL string
	publicURL string
}

// NewHTTPBlobStore uses publicURL for links handed to browsers, falling back
// to serverURL when the two are the same host.
func NewHTTPBlobStore(serverURL, publicURL string) *HTTPBlobStore {
	if publicURL == "" {
		publicURL = serverURL
	}
	return &HTTPBlobStore{
		client: &fasthttp.Client{
			Name:                "swiftport-blob-client",
			MaxConnsPerHost:     16,
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        30 * time.Second,
			MaxIdleConnDuration: time.Minute,
		},
		serverURL: serverURL,
		publicURL: publicURL,
	}
}

func (s *HTTPBlobStore) Upload(ctx context.Context, name string, content []byte, contentType string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(joinURL(s.serverURL, "/objects/", name))
	req.Header.SetMethod(fasthttp.MethodPut)
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	req.SetBodyRaw(content)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = s.client.DoDeadline(req, resp, deadline)
	} else {
		err = s.client.Do(req, resp)
	}
	if err != nil {
		return err
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("object server returned %d: %s", code, resp.Body())
	}
	return nil
}

func (s *HTTPBlobStore) PublicURL(name string) string {
	return joinURL(s.publicURL, "/objects/", name)
}
