package chart

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

var pageTmpl = template.Must(template.New("figure").Parse(`<!doctype html>
<html><head><title>{{.}}</title></head>
<body style="margin:0;text-align:center">
<img src="/figure.png" alt="{{.}}" style="max-width:100%">
<form method="post" action="/dismiss"><button type="submit">Close</button></form>
</body></html>`))

// BrowserSurface serves the figure on a local HTTP page and blocks until the page's
// Close button is pressed or ctx is done.
type BrowserSurface struct {
	Addr string
	Log  *zap.Logger

	// OnReady, if set, is called with the page URL once the server is listening.
	OnReady func(url string)
}

func (b *BrowserSurface) Show(ctx context.Context, fig *Figure) error {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}
	var png bytes.Buffer
	if _, err := fig.WriteTo(&png); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", b.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", b.Addr, err)
	}

	dismissed := make(chan struct{})
	var once sync.Once
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, fig.Title); err != nil {
			log.Warn("render figure page", zap.Error(err))
		}
	})
	mux.HandleFunc("/figure.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png.Bytes())
	})
	mux.HandleFunc("/dismiss", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		once.Do(func() { close(dismissed) })
		w.Write([]byte("closed"))
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	url := "http://" + ln.Addr().String() + "/"
	log.Info("figure ready", zap.String("figure", fig.Name), zap.String("url", url))
	if b.OnReady != nil {
		b.OnReady(url)
	}

	select {
	case <-dismissed:
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("serve figure: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
