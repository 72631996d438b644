package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/buildinfo"
	"github.com/matzehuels/amas/pkg/cache"
	amaserrors "github.com/matzehuels/amas/pkg/errors"
	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/observability"
	"github.com/matzehuels/amas/pkg/pipeline"
	"github.com/matzehuels/amas/pkg/render"
)

const (
	defaultAddr     = "127.0.0.1:7420"
	shutdownTimeout = 5 * time.Second
	requestIDHeader = "X-Request-ID"
	memoryTTL       = 10 * time.Minute
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		scan    scanFlags
		lf      layoutFlags
		addr    string
		entries int
	)

	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve the import graph of a project over HTTP",
		Long: `Serve the import graph of a project over HTTP.

Every request rebuilds the graph from disk, so edits show up on reload.

Endpoints:
  GET /api/graph            import graph as JSON
  GET /api/layout           laid out graph as JSON
  GET /render.svg           SVG drawing
  GET /render.png           PNG drawing
  GET /render.dot           Graphviz DOT with pinned positions
  GET /render.graphviz.svg  SVG drawn by Graphviz
  GET /healthz              liveness

Layout and render endpoints accept width, height, iterations and seed query
parameters. Render endpoints also accept select (repeatable, paths relative
to root), scale and names=false.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			scan.apply(&opts)
			lf.apply(&opts)
			return c.runServe(cmd.Context(), rootArg(args), opts, addr, entries)
		},
	}

	scan.bind(cmd)
	lf.bind(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().IntVar(&entries, "memory-entries", cache.DefaultMemoryEntries, "in-memory cache entries in front of the file or Redis cache (0 disables)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, root string, opts pipeline.Options, addr string, entries int) error {
	cfg, err := c.projectOptions(root, &opts)
	if err != nil {
		return err
	}
	if err := opts.ValidateForBuild(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if entries > 0 && !c.noCache && !cfg.Cache.Disabled {
		mem, err := cache.NewMemoryCache(entries)
		if err != nil {
			return fmt.Errorf("initialize memory cache: %w", err)
		}
		runner.Cache = cache.NewTiered(mem, runner.Cache, memoryTTL)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, opts, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	printSuccess("Serving %s", root)
	printKeyValue("address", StyleLink.Render("http://"+ln.Addr().String()+"/render.svg"))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// =============================================================================
// server - HTTP host for the pipeline
// =============================================================================

// server answers each request with a fresh pipeline run over base.
// Nothing but the runner's cache is shared between requests.
type server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *server {
	return &server{runner: runner, base: base, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/layout", s.handleLayout)
	})
	for _, f := range render.Formats {
		r.Get("/render."+pipeline.Extension(f), s.handleRender(f))
	}
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts := s.base
	built, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.ExportGraph(built))
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		s.fail(w, r, err)
		return
	}
	built, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Layout(r.Context(), built.Graph, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, graph.FromResult(res, opts.LayoutOptions()))
}

func (s *server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.requestOptions(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		cacheStatus := "miss"
		if result.CacheInfo.RenderHit {
			cacheStatus = "hit"
		}
		w.Header().Set("Content-Type", pipeline.ContentType(format))
		w.Header().Set("X-Cache", cacheStatus)
		w.Header().Set("ETag", strconv.Quote(result.LayoutHash))
		_, _ = w.Write(result.Artifacts[format])
	}
}

// requestOptions overlays query parameters on the server's base options.
func (s *server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	q := r.URL.Query()

	floats := map[string]*float64{"width": &opts.Width, "height": &opts.Height, "scale": &opts.Scale}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, amaserrors.Wrap(amaserrors.ErrCodeInvalidInput, err, "query parameter %s", name)
			}
			*dst = f
		}
	}
	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, amaserrors.Wrap(amaserrors.ErrCodeInvalidInput, err, "query parameter iterations")
		}
		opts.Iterations = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, amaserrors.Wrap(amaserrors.ErrCodeInvalidInput, err, "query parameter seed")
		}
		opts.Seed = n
	}
	if v := q.Get("names"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return opts, amaserrors.Wrap(amaserrors.ErrCodeInvalidInput, err, "query parameter names")
		}
		opts.HideNames = !show
	}
	opts.Selected = selectedPaths(opts.Root, q["select"])
	return opts, nil
}

// fail writes err as JSON with a status derived from its code.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": amaserrors.UserMessage(err),
		"code":  string(amaserrors.GetCode(err)),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	switch amaserrors.GetCode(err) {
	case amaserrors.ErrCodeInvalidInput, amaserrors.ErrCodeInvalidFormat, amaserrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case amaserrors.ErrCodeNotFound, amaserrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID propagates X-Request-ID, generating one when absent.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// observe reports each request to the server hooks with its route pattern.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.ServerHeader())
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Server().OnRequest(r.Context(), r.Method, route, status, time.Since(start))
	})
}
