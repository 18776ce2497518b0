package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/playground"
	"github.com/Zachkp/portfolio/internal/raster"
	"github.com/Zachkp/portfolio/internal/scroll"
	"github.com/Zachkp/portfolio/internal/store"
)

// Snapshot defaults for backdrop images.
const (
	defaultBackdropWidth  = 1280
	defaultBackdropHeight = 720
	defaultBackdropFrames = 120
	defaultBackdropSeed   = 1
)

type server struct {
	cfg   config.Config
	scene *config.Scene
	store *store.Store
	agent *playground.Agent

	adminToken  string
	hashingSalt string

	// tracking counts visitor writes still in flight.
	tracking sync.WaitGroup
}

func newServer(cfg config.Config, scene *config.Scene, st *store.Store) *server {
	s := &server{
		cfg:   cfg,
		scene: scene,
		store: st,
		agent: playground.NewAgent(),
	}
	s.initAdminToken()
	return s
}

func (s *server) router() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(s.visitorTrackingMiddleware())

	r.GET("/", s.index)
	r.GET("/backdrop/:name", s.backdrop)
	r.GET("/api/scroll", s.scrollStyle)
	r.GET("/api/playground", s.playground)
	r.GET("/api/themes", s.themes)

	s.setupAdminRoutes(r)
	return r, nil
}

type backdropView struct {
	Name    string
	Variant string
	URL     string
}

// Home page
func (s *server) index(c *gin.Context) {
	reduced := c.Query("reduced") == "1"
	themeName := c.DefaultQuery("theme", s.scene.Theme)
	if _, err := s.scene.Palette(themeName); err != nil {
		themeName = s.scene.Theme
	}

	var backdrops []backdropView
	for _, b := range s.scene.Backdrops {
		q := url.Values{"theme": {themeName}}
		if reduced {
			q.Set("reduced", "1")
		}
		backdrops = append(backdrops, backdropView{
			Name:    b.Name,
			Variant: b.Variant,
			URL:     "/backdrop/" + url.PathEscape(b.Name) + ".png?" + q.Encode(),
		})
	}

	about := playground.Classify("about")
	projects := playground.Classify("projects")
	cat, _ := s.scene.Catalog()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"backdrops":       backdrops,
		"theme":           themeName,
		"themes":          cat.Names(),
		"reduced":         reduced,
		"aboutMeContent":  about.Reply,
		"projectsContent": projects.Reply,
		"topics":          playground.TopicNames(),
	})
}

// backdrop renders /backdrop/<name>.png, where name is a scene preset or a
// variant. The image is deterministic for a given query.
func (s *server) backdrop(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("name"), ".png")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "backdrop images are PNG"})
		return
	}
	preset, ok := s.scene.Backdrop(name)
	if !ok {
		if _, err := particles.ParseVariant(name); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown backdrop %q", name)})
			return
		}
		preset = config.Backdrop{Name: name, Variant: name}
	}

	variant, opts, err := preset.Options()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	snap, seed, err := s.snapshotQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts.Seed = seed
	if snap.Pointer != nil {
		opts.Interactive = true
	}

	sim, err := particles.NewSimulation(variant, opts, snap.Palette)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	img, err := raster.Render(sim, snap)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		log.Printf("Error encoding backdrop %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *server) snapshotQuery(c *gin.Context) (raster.Snapshot, int64, error) {
	var snap raster.Snapshot
	var err error
	if snap.Width, err = intQuery(c, "w", defaultBackdropWidth); err != nil {
		return snap, 0, err
	}
	if snap.Height, err = intQuery(c, "h", defaultBackdropHeight); err != nil {
		return snap, 0, err
	}
	if snap.Frames, err = intQuery(c, "frames", defaultBackdropFrames); err != nil {
		return snap, 0, err
	}
	// Reduced motion gets the bare backdrop, no particles.
	if c.Query("reduced") == "1" {
		snap.Frames = 0
	}
	seed, err := intQuery(c, "seed", defaultBackdropSeed)
	if err != nil {
		return snap, 0, err
	}

	_, hasX := c.GetQuery("px")
	_, hasY := c.GetQuery("py")
	if hasX || hasY {
		px, err := floatQuery(c, "px", 0)
		if err != nil {
			return snap, 0, err
		}
		py, err := floatQuery(c, "py", 0)
		if err != nil {
			return snap, 0, err
		}
		snap.Pointer = &particles.Pointer{X: px, Y: py, Valid: true}
	}

	snap.Transparent = c.Query("transparent") == "1"
	if snap.Palette, err = s.scene.Palette(c.Query("theme")); err != nil {
		return snap, 0, err
	}
	return snap, int64(seed), nil
}

// scrollStyle evaluates the scroll-in animation. Progress comes either from
// ?progress= directly or from ?y=&viewport=&document= pixel offsets.
func (s *server) scrollStyle(c *gin.Context) {
	opts := scroll.DefaultOptions()
	var err error
	if opts.Start, err = floatQuery(c, "start", opts.Start); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opts.End, err = floatQuery(c, "end", opts.End); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opts.Ease, err = scroll.Easing(c.Query("ease")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var progress float64
	if _, ok := c.GetQuery("y"); ok {
		y, err1 := floatQuery(c, "y", 0)
		vh, err2 := floatQuery(c, "viewport", 0)
		dh, err3 := floatQuery(c, "document", 0)
		if err := errors.Join(err1, err2, err3); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		progress = scroll.Progress(y, vh, dh)
	} else if progress, err = floatQuery(c, "progress", 0); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress": progress,
		"style":    scroll.NewAnimation(opts).At(progress),
	})
}

// playground streams the scripted answer to ?q= as server-sent events: one
// event per step, named after the step kind, then a "done" event.
func (s *server) playground(c *gin.Context) {
	query, err := playground.Validate(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	topic, err := s.agent.Run(ctx, query, func(step playground.Step) error {
		c.SSEvent(string(step.Kind), step)
		c.Writer.Flush()
		return ctx.Err()
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Playground stream for %q ended early: %v", topic.Name, err)
		}
		return
	}

	if err := s.store.RecordQuery(ctx, topic.Name, s.hashIP(c.ClientIP())); err != nil {
		log.Printf("Error recording playground query: %v", err)
	}
	c.SSEvent("done", gin.H{"topic": topic.Name})
}

func (s *server) themes(c *gin.Context) {
	cat, err := s.scene.Catalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"default": s.scene.Theme, "themes": cat.Names()})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}
