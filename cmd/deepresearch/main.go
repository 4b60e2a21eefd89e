package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alan-mat/deepresearch/internal/config"
	"github.com/alan-mat/deepresearch/internal/metrics"
	"github.com/alan-mat/deepresearch/server"
	"github.com/alexflint/go-arg"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const (
	ProgramName   = "deepresearch"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/alan-mat/deepresearch"
)

type serveCmd struct{}

type queryCmd struct {
	Query string `arg:"positional,required" help:"research topic"`
}

type traceCmd struct {
	ID string `arg:"positional,required" help:"trace id from the X-Trace-Id header"`
}

type args struct {
	Serve *serveCmd `arg:"subcommand:serve" help:"start the research API server"`
	Query *queryCmd `arg:"subcommand:query" help:"research a topic once and print the summary"`
	Trace *traceCmd `arg:"subcommand:trace" help:"show a stored request trace"`

	Config   string `arg:"--config,-c" default:"config.yaml" help:"path to the config file"`
	LogLevel string `arg:"--log-level" help:"debug, info, warn or error; overrides the config file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: strings.ToLower(ProgramName)}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	conf, err := config.ReadConfig(args.Config)
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}
	conf.ApplyEnv(os.LookupEnv)
	if args.LogLevel != "" {
		conf.LogLevel = args.LogLevel
	}

	level, err := config.ParseLevel(conf.LogLevel)
	if err != nil {
		p.Fail(err.Error())
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd := p.Subcommand().(type) {
	case *serveCmd:
		err = startServer(ctx, conf)
	case *queryCmd:
		err = runQuery(ctx, conf, cmd.Query)
	case *traceCmd:
		err = showTrace(ctx, conf, cmd.ID)
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	if err != nil {
		slog.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func startServer(ctx context.Context, conf *config.Config) error {
	a, err := newApp(ctx, conf)
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(server.ServerConfig{
		ListenHost: conf.Server.ListenHost,
		ListenPort: conf.Server.ListenPort,
	}, a.pipeline, a.store, a.transport)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ctx)
	})

	if conf.Metrics.Port > 0 {
		ms := metrics.Start(conf.Metrics.Port)
		slog.Info("metrics server starting", "port", conf.Metrics.Port)
		g.Go(func() error {
			<-ctx.Done()
			return ms.Stop(context.Background())
		})
	}

	return g.Wait()
}

func runQuery(ctx context.Context, conf *config.Config, query string) error {
	a, err := newApp(ctx, conf)
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.pipeline.Run(ctx, query)
	if err != nil {
		return err
	}

	path, err := a.store.Write(query, state.Response)
	if err != nil {
		return err
	}
	slog.Debug("response written", "file", path)

	fmt.Println(state.Response)
	return nil
}

func showTrace(ctx context.Context, conf *config.Config, id string) error {
	if conf.Transport.Addr == "" {
		return fmt.Errorf("trace lookup requires transport.addr to be configured")
	}

	t := newTransport(conf.Transport)
	defer t.Close()

	trace, err := t.GetTrace(ctx, id)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(struct {
		ID         string  `json:"id"`
		Status     string  `json:"status"`
		Query      string  `json:"query"`
		Duration   string  `json:"duration"`
		FailReason *string `json:"fail_reason,omitempty"`
	}{
		ID:         trace.ID,
		Status:     trace.Status.String(),
		Query:      trace.Query,
		Duration:   trace.Duration().String(),
		FailReason: trace.FailReason,
	}, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
