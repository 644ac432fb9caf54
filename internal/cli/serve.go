package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/bugu00/chorogrid/pkg/cache"
	"github.com/bugu00/chorogrid/pkg/colorbin"
	cherrors "github.com/bugu00/chorogrid/pkg/errors"
	"github.com/bugu00/chorogrid/pkg/grid"
	"github.com/bugu00/chorogrid/pkg/palette"
	"github.com/bugu00/chorogrid/pkg/render/choropleth"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	idColumn string
	redis    string
	noCache  bool
	ttl      time.Duration
}

// serveCommand creates the serve command exposing rendering over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [grid.csv]",
		Short: "Expose rendering over HTTP with response caching",
		Long: `Expose rendering over HTTP with response caching.

Loads the grid file once and answers POST /render/{chart} requests,
binning the posted values and returning the rendered SVG. Identical
requests are served from the cache; by default a local file cache,
or redis with --redis for deployments sharing a cache across
instances.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.idColumn, "id-column", "abbrev", "id column of the grid file")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address (host:port) for a shared cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "cache entry lifetime")

	return cmd
}

// runServe builds the server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, gridFile string, opts *serveOpts) error {
	table, err := grid.ReadFile(gridFile)
	if err != nil {
		return fmt.Errorf("load grid %s: %w", gridFile, err)
	}
	if !table.HasColumn(opts.idColumn) {
		return cherrors.New(cherrors.ErrCodeMissingColumn, "no id column %q in %s", opts.idColumn, gridFile)
	}
	gridRaw, err := os.ReadFile(gridFile)
	if err != nil {
		return err
	}

	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &renderServer{
		logger:   c.Logger,
		table:    table,
		gridHash: cache.Hash(gridRaw),
		idColumn: opts.idColumn,
		cache:    cache.NewScoped(store, gridFile+":"),
		ttl:      opts.ttl,
	}

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr, "grid", gridFile, "rows", table.Len())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache picks the cache backend from the flags.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		store, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", opts.redis, err)
		}
		return store, nil
	}
	return newCache(false)
}

// renderServer answers render requests against one preloaded grid.
type renderServer struct {
	logger   *log.Logger
	table    *grid.Table
	gridHash string
	idColumn string
	cache    cache.Cache
	ttl      time.Duration
}

// renderRequest is the POST /render/{chart} body.
type renderRequest struct {
	Values      map[string]float64 `json:"values"`
	Palette     string             `json:"palette"`
	Bins        int                `json:"bins"`
	Quantile    bool               `json:"quantile"`
	Decimals    *int               `json:"decimals"`
	Title       string             `json:"title"`
	Legend      bool               `json:"legend"`
	LegendTitle string             `json:"legend_title"`
}

// routes assembles the chi router.
func (s *renderServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/palettes", s.handlePalettes)
	r.Post("/render/{chart}", s.handleRender)
	return r
}

// logging attaches the server logger to the request context and logs
// each request with its duration.
func (s *renderServer) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), s.logger)))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"id", middleware.GetReqID(r.Context()),
			"took", time.Since(start).Round(time.Millisecond))
	})
}

// handlePalettes lists the built-in palette names.
func (s *renderServer) handlePalettes(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(palette.Names())
}

// handleRender bins the posted values and returns the rendered SVG.
func (s *renderServer) handleRender(w http.ResponseWriter, r *http.Request) {
	chart := chi.URLParam(r, "chart")
	if err := validateChart(chart); err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if len(req.Values) == 0 {
		httpError(w, http.StatusBadRequest, fmt.Errorf("values must not be empty"))
		return
	}
	if req.Palette == "" {
		req.Palette = defaultPalette
	}
	if req.Bins == 0 {
		req.Bins = defaultBins
	}

	key := cache.RenderKey(chart, s.gridHash, req)
	ctx := r.Context()
	if doc, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		writeSVG(w, doc, true)
		return
	}

	doc, err := s.render(chart, &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch cherrors.GetCode(err) {
		case cherrors.ErrCodeEmptyInput, cherrors.ErrCodeInvalidPalette, cherrors.ErrCodeInvalidLegend:
			status = http.StatusBadRequest
		case cherrors.ErrCodeNotFound:
			status = http.StatusNotFound
		}
		httpError(w, status, err)
		return
	}
	if err := s.cache.Set(ctx, key, doc, s.ttl); err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "err", err)
	}
	writeSVG(w, doc, false)
}

// render bins and draws one request.
func (s *renderServer) render(chart string, req *renderRequest) ([]byte, error) {
	// Deterministic id order keeps the cache key and output stable.
	ids := make([]string, 0, len(req.Values))
	for id := range req.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	quantities := make([]float64, len(ids))
	for i, id := range ids {
		quantities[i] = req.Values[id]
	}

	colors, err := palette.Get(req.Palette, req.Bins)
	if err != nil {
		return nil, err
	}
	binOpts := []colorbin.Option{}
	if req.Quantile {
		binOpts = append(binOpts, colorbin.WithQuantile())
	}
	if req.Decimals != nil {
		binOpts = append(binOpts, colorbin.WithDecimals(*req.Decimals))
	}
	bin, err := colorbin.New(quantities, colors, binOpts...)
	if err != nil {
		return nil, err
	}

	ropts := []choropleth.Option{}
	if req.Title != "" {
		ropts = append(ropts, choropleth.WithTitle(req.Title))
	}
	if req.Legend {
		legend := choropleth.NewLegend(bin.Palette, bin.FencepostLabels)
		legend.Title = req.LegendTitle
		ropts = append(ropts, choropleth.WithLegend(legend))
	}

	renderer, err := choropleth.New(s.table, s.idColumn, ids, bin.ColorsOut, ropts...)
	if err != nil {
		return nil, err
	}

	switch chart {
	case chartHex:
		return renderer.DrawHex(choropleth.DefaultHexConfig())
	case chartMultihex:
		return renderer.DrawMultihex(choropleth.DefaultMultihexConfig())
	case chartMap:
		return renderer.DrawMap(choropleth.DefaultMapConfig())
	default:
		return renderer.DrawSquares(choropleth.DefaultSquareConfig())
	}
}

// writeSVG sends a rendered document with cache status.
func writeSVG(w http.ResponseWriter, doc []byte, cached bool) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(doc)
}

// httpError sends a JSON error body.
func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
