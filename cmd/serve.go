package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard over HTTP" }
func (*serveCmd) Usage() string {
	return `cft serve [-addr :8080]

  Serves the dashboard as an HTML page on /, the valuation as JSON on
  /api/state. POST /api/refresh fetches the data again.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tr := NewTracker(cryptofolio.Punters())
	tr.RefreshAsync(ctx)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{Addr: c.addr, Handler: newRouter(tr, Logger())}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	Logger().Infow("serving dashboard", "addr", c.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error serving on %s: %v\n", c.addr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newRouter returns the HTTP view of tr.
func newRouter(tr *cryptofolio.Tracker, log *zap.SugaredLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(logRequest(log))

	router.GET("/", func(c *gin.Context) {
		page, err := dashboardPage(tr.Valuation())
		if err != nil {
			log.Errorw("rendering dashboard", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "cannot render dashboard"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, tr.Valuation())
	})
	api.POST("/refresh", func(c *gin.Context) {
		if c.Query("wait") == "true" {
			s := <-tr.RefreshAsync(c.Request.Context())
			c.JSON(http.StatusOK, tr.Portfolio().Valuate(s))
			return
		}
		// the cycle outlives the request
		tr.RefreshAsync(context.WithoutCancel(c.Request.Context()))
		if c.Query("redirect") == "true" {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		c.JSON(http.StatusAccepted, tr.Portfolio().Valuate(cryptofolio.LoadingState()))
	})
	return router
}

func logRequest(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugw("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "elapsed", time.Since(start))
	}
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Loading}}
<meta http-equiv="refresh" content="2">
{{- end}}
</head>
<body>
{{.Body}}
<form method="post" action="/api/refresh?redirect=true">
<button type="submit"{{if .Loading}} disabled{{end}}>Refresh Data</button>
</form>
</body>
</html>
`))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// dashboardPage renders v as a standalone HTML page.
func dashboardPage(v *cryptofolio.Valuation) ([]byte, error) {
	var body bytes.Buffer
	md := renderer.RenderDashboard(v, renderer.RenderOptions{RetryHint: "Use the Refresh Data button to try again."})
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title   string
		Loading bool
		Body    template.HTML
	}{
		Title:   v.Portfolio,
		Loading: v.Status == cryptofolio.Loading,
		Body:    template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return out.Bytes(), nil
}
