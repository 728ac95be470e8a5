// go_youtube: YouTube metadata, captions and Markdown MCP server.
//
// Exposes four MCP tools (get_video_info, get_captions, convert_to_markdown,
// list_templates) and two resource templates under youtube://.
// Runs over stdio by default, or as an HTTP MCP server with MCP_TRANSPORT=http.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/sources"
	"github.com/anatolykoptev/go_youtube/internal/markdown"
	"github.com/anatolykoptev/go_youtube/internal/ytserver"
)

var version = "dev"

func main() {
	// stdout carries the stdio transport, so logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	d, err := initDispatcher(ctx, &cfg)
	if err != nil {
		slog.Error("init failed", slog.Any("error", err))
		os.Exit(1)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_youtube",
		Version: version,
	}, nil)
	ytserver.Register(server, d)
	slog.Info("tools registered", slog.Int("count", len(d.ToolNames())))

	transport := env.Str("MCP_TRANSPORT", "stdio")
	slog.Info("starting go_youtube",
		slog.String("transport", transport),
		slog.String("credential", string(engine.SelectCredential(&cfg))),
	)

	switch transport {
	case "http":
		err = mcpserver.Run(server, mcpserver.Config{
			Name:         "go_youtube",
			Version:      version,
			Port:         env.Str("MCP_PORT", "8892"),
			WriteTimeout: 120 * time.Second,
			Metrics:      engine.FormatMetrics,
		})
	default:
		err = server.Run(ctx, &mcp.StdioTransport{})
	}
	if err != nil && ctx.Err() == nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig() engine.Config {
	c := engine.Config{
		YouTubeAPIKey:       env.Str("YOUTUBE_API_KEY", ""),
		YouTubeRefreshToken: env.Str("YOUTUBE_REFRESH_TOKEN", ""),
		YouTubeClientID:     env.Str("YOUTUBE_CLIENT_ID", ""),
		YouTubeClientSecret: env.Str("YOUTUBE_CLIENT_SECRET", ""),
		YouTubeAPIEndpoint:  env.Str("YOUTUBE_API_ENDPOINT", ""),
		WatchURL:            env.Str("YOUTUBE_WATCH_URL", engine.DefaultWatchURL),
		PlayerURL:           env.Str("YOUTUBE_PLAYER_URL", engine.DefaultPlayerURL),
		DefaultTemplate:     env.Str("DEFAULT_TEMPLATE", engine.DefaultTemplateName),
		DefaultLanguage:     env.Str("DEFAULT_LANGUAGE", engine.DefaultLanguageCode),
		TemplatesFile:       env.Str("TEMPLATES_FILE", ""),
		FetchTimeout:        env.Duration("FETCH_TIMEOUT", 15*time.Second),
		YouTubeAPIRPS:       env.Float("YOUTUBE_API_RPS", 5),
		CaptionRPS:          env.Float("CAPTION_RPS", 2),
	}
	return c.WithDefaults()
}

func initDispatcher(ctx context.Context, cfg *engine.Config) (*ytserver.Dispatcher, error) {
	meta, err := sources.NewMetadataClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	templates, err := markdown.LoadRegistry(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}
	if cfg.TemplatesFile != "" {
		slog.Info("templates loaded",
			slog.String("file", cfg.TemplatesFile),
			slog.Int("count", len(templates.List())))
	}
	return ytserver.NewDispatcher(cfg, meta, sources.NewCaptionClient(cfg), templates), nil
}
