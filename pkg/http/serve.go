package xhttp

import (
	"crypto/tls"
	"net"
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/swiftport/customs-dashboard/pkg/logger"
	"github.com/valyala/fasthttp"
)

// env list:
// XHTTP_SERVER_READ_TIMEOUT
// XHTTP_SERVER_WRITE_TIMEOUT
// XHTTP_SERVER_READ_BUFFER_BYTE
// XHTTP_SERVER_WRITE_BUFFER_BYTE
// values are milliseconds and bytes

var (
	defaultReadBufferSize  = envInt("XHTTP_SERVER_READ_BUFFER_BYTE", 1024*16, 1024)
	defaultWriteBufferSize = envInt("XHTTP_SERVER_WRITE_BUFFER_BYTE", 1024*16, 1024)
	defaultReadTimeout     = time.Millisecond * time.Duration(envInt("XHTTP_SERVER_READ_TIMEOUT", 30_000, 0))
	defaultWriteTimeout    = time.Millisecond * time.Duration(envInt("XHTTP_SERVER_WRITE_TIMEOUT", 30_000, 0))
)

// envInt reads key as an int, falling back to def when it is unset,
// malformed or not above floor.
func envInt(key string, def, floor int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= floor {
		return def
	}
	return v
}

var DefaultServerOption = ServerOption{
	Handler: func(ctx *RequestCtx) {
		ctx.Error(StatusText(StatusNotFound), StatusNotFound)
	},
	IdleTimeout:           time.Second * 10,
	MaxIdleWorkerDuration: time.Minute * 1,
	TCPKeepalivePeriod:    time.Minute * 120, // linux default
	// room for one attachment plus the multipart envelope
	MaxRequestBodySize: 12 * 1024 * 1024,
	ReadBufferSize:     defaultReadBufferSize, // also, max header size
	WriteBufferSize:    defaultWriteBufferSize,
	ReadTimeout:        defaultReadTimeout,
	WriteTimeout:       defaultWriteTimeout,
	Concurrency:        10_000,
	MaxConnsPerIP:      1_000,
	ErrorHandler: func(ctx *RequestCtx, err error) {
		logger.Warn("[xhttp] request error", "error", err, "path", string(ctx.Path()))
	},
	TCPKeepalive:          true,
	LogAllErrors:          true,
	NoDefaultServerHeader: true,
	NoDefaultContentType:  true,
	CloseOnShutdown:       true,
	Logger:                logger.GetLogger(),
}

type RequestHeader = fasthttp.RequestHeader
type ResponseHeader = fasthttp.ResponseHeader
type Server = fasthttp.Server

type ServerOption struct {
	Handler RequestHandler

	// idle keep-alive connections are closed after this, too many of them
	// end in "too many open files"
	IdleTimeout time.Duration

	MaxIdleWorkerDuration time.Duration
	TCPKeepalivePeriod    time.Duration

	// upper bound for a whole request, multipart uploads included
	MaxRequestBodySize int

	// ReadBufferSize is the per-connection buffer size for
	// requests' reading. It also caps the header size.
	ReadBufferSize  int
	WriteBufferSize int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Concurrency   int
	MaxConnsPerIP int

	ErrorHandler          func(ctx *RequestCtx, err error)
	Name                  string
	TCPKeepalive          bool
	LogAllErrors          bool
	NoDefaultServerHeader bool
	NoDefaultContentType  bool
	CloseOnShutdown       bool
	ConnState             func(net.Conn, fasthttp.ConnState)
	Logger                logger.Logger
	TLSConfig             *tls.Config
}

// Engine is a fasthttp server with a router and a middleware chain.
type Engine struct {
	*Router
	*Server
	option ServerOption
	middle []MiddlewareFunc
}

func newServer(options ServerOption) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:               options.Handler,
		ErrorHandler:          options.ErrorHandler,
		Name:                  options.Name,
		Concurrency:           options.Concurrency,
		ReadBufferSize:        options.ReadBufferSize,
		WriteBufferSize:       options.WriteBufferSize,
		ReadTimeout:           options.ReadTimeout,
		WriteTimeout:          options.WriteTimeout,
		IdleTimeout:           options.IdleTimeout,
		MaxConnsPerIP:         options.MaxConnsPerIP,
		MaxIdleWorkerDuration: options.MaxIdleWorkerDuration,
		TCPKeepalivePeriod:    options.TCPKeepalivePeriod,
		MaxRequestBodySize:    options.MaxRequestBodySize,
		TCPKeepalive:          options.TCPKeepalive,
		LogAllErrors:          options.LogAllErrors,
		NoDefaultServerHeader: options.NoDefaultServerHeader,
		NoDefaultContentType:  options.NoDefaultContentType,
		CloseOnShutdown:       options.CloseOnShutdown,
		ConnState:             options.ConnState,
		Logger:                options.Logger,
		TLSConfig:             options.TLSConfig,
	}
}

func NewServer(options ServerOption) *Engine {
	return &Engine{
		Server: newServer(options),
		Router: NewRouter(),
		option: options,
	}
}

// CreateServer returns an engine with the default options and router.
func CreateServer() *Engine {
	s := NewServer(DefaultServerOption)
	s.Router = CreateDefaultRouter()
	return s
}

func (e *Engine) ListenAndServe(addr string) error {
	e.DoRouting()
	e.Server.Logger.Printf("[xhttp] server is listening on %s", addr)
	return e.Server.ListenAndServe(addr)
}

// Handler returns the router wrapped in the registered middlewares. The
// first registered middleware is the outermost one.
func (e *Engine) Handler() RequestHandler {
	h := RequestHandler(e.Router.Handler)
	for i := len(e.middle) - 1; i >= 0; i-- {
		h = e.middle[i](h)
	}
	return h
}

func (e *Engine) DoRouting() {
	for method, route := range e.Router.List() {
		for _, r := range route {
			e.Server.Logger.Printf("[xhttp] method: %s, path: %s", method, r)
		}
	}
	for i, m := range e.middle {
		e.Server.Logger.Printf("[xhttp] middleware %d registered - %s", i+1, runtime.FuncForPC(reflect.ValueOf(m).Pointer()).Name())
	}
	e.Server.Handler = e.Handler()
}

// Use adds middleware to the end of the chain.
//
//	func CORS(next xhttp.RequestHandler) xhttp.RequestHandler {
//		return func(ctx *xhttp.RequestCtx) {
//			ctx.Response.Header.Set("Access-Control-Allow-Origin", corsAllowOrigin)
//			next(ctx)
//		}
//	}
func (e *Engine) Use(middleware MiddlewareFunc) {
	e.middle = append(e.middle, middleware)
}

// CloseOnSignal shuts the server down on SIGINT, SIGTERM or SIGQUIT and
// closes the returned channel once it is done.
func (e *Engine) CloseOnSignal() <-chan struct{} {
	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		s := <-sig
		e.Server.Logger.Printf("[xhttp] received %s", s)
		e.Shutdown()
		close(done)
	}()
	return done
}

// Shutdown gracefully shuts down the server without interrupting any active connections.
func (e *Engine) Shutdown() {
	e.Server.Logger.Printf("[xhttp] server is shutting down, process id: %d", os.Getpid())
	if err := e.Server.Shutdown(); err != nil {
		e.Server.Logger.Printf("[xhttp] error while shutting down: %v", err)
	}
}
