// Command responsedemo serves one route per response operation so the
// formatter can be exercised with curl.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/response"
	"github.com/dmitrymomot/response/pkg/config"
	"github.com/dmitrymomot/response/pkg/cookie"
	"github.com/dmitrymomot/response/pkg/file"
	"github.com/dmitrymomot/response/pkg/httpserver"
	"github.com/dmitrymomot/response/pkg/logger"
	"github.com/dmitrymomot/response/pkg/requestid"
)

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(append(logCfg.Options(), logger.WithContextExtractors(requestid.LogExtractor))...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("responsedemo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		resCfg    response.Config
		cookieCfg cookie.Config
		s3Cfg     file.S3Config
		srvCfg    httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&resCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&s3Cfg) },
		func() error { return config.Load(&srvCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	signer, err := cookieCfg.Signer()
	if err != nil {
		return err
	}
	opts := []response.Option{
		response.WithLogger(log),
		response.WithCookieDefaults(cookieCfg.Options()),
		response.WithCookieSigner(signer),
	}

	// Files come from S3 when a bucket is configured, else from FileRoot.
	if s3Cfg.Bucket != "" {
		src, err := file.NewS3(ctx, s3Cfg)
		if err != nil {
			return err
		}
		opts = append(opts, response.WithFileSource(src))
		log.Info("serving files from s3", slog.String("bucket", s3Cfg.Bucket))
	}

	app, err := newApp(resCfg, log, opts...)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, app.routes())
}
