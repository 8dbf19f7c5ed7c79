// Package inspect serves a small debug API over the running animators and the
// preference store.
package inspect

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iburimskiy/proximity-nav/internal/prefs"
	"github.com/iburimskiy/proximity-nav/internal/proximity"
	"github.com/iburimskiy/proximity-nav/internal/site"
)

// Snapshotter is implemented by *proximity.Animator.
type Snapshotter interface {
	Snapshot() []proximity.TargetState
	Animating() bool
}

// Prefs is the subset of *prefs.Store the server uses.
type Prefs interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

type animatorView struct {
	Name      string                  `json:"name"`
	Animating bool                    `json:"animating"`
	Targets   []proximity.TargetState `json:"targets"`
}

type prefBody struct {
	Value string `json:"value" binding:"required"`
}

// NewRouter builds the gin engine. p may be nil, in which case the /prefs
// routes report 503.
func NewRouter(animators map[string]Snapshotter, p Prefs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/debug/animators", func(c *gin.Context) {
		names := make([]string, 0, len(animators))
		for name := range animators {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]animatorView, 0, len(names))
		for _, name := range names {
			out = append(out, view(name, animators[name]))
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/debug/animators/:name", func(c *gin.Context) {
		name := c.Param("name")
		a, ok := animators[name]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown animator " + name})
			return
		}
		c.JSON(http.StatusOK, view(name, a))
	})

	r.GET("/prefs", func(c *gin.Context) {
		if p == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preferences disabled"})
			return
		}
		all, err := p.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, all)
	})

	r.PUT("/prefs/:key", func(c *gin.Context) {
		if p == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preferences disabled"})
			return
		}
		var body prefBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		key := c.Param("key")
		if err := validatePref(key, body.Value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := p.Set(c.Request.Context(), key, body.Value); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, prefs.ErrClosed) {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{key: body.Value})
	})

	return r
}

func view(name string, a Snapshotter) animatorView {
	return animatorView{Name: name, Animating: a.Animating(), Targets: a.Snapshot()}
}

var errUnknownKey = errors.New("unknown preference key")

func validatePref(key, value string) error {
	switch key {
	case prefs.KeyTheme:
		_, err := site.ParseTheme(value)
		return err
	case prefs.KeyLanguage:
		_, err := site.ParseLang(value)
		return err
	case prefs.KeySection:
		return nil
	}
	return errUnknownKey
}

// Serve runs the router on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Printf("[INFO] inspect server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
