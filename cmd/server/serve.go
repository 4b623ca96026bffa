package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	pb "treatment-booking-api/api/clinic/v1"
	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/availability"
	"treatment-booking-api/internal/booking"
	gweb "treatment-booking-api/internal/grpcweb"
	"treatment-booking-api/internal/handler"
	"treatment-booking-api/internal/middleware"
	"treatment-booking-api/internal/rest"
	"treatment-booking-api/internal/store"
)

func serveCmd(envFile *string) *cobra.Command {
	var seedFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gRPC, grpc-web and REST listeners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*envFile, seedFile)
		},
	}
	cmd.Flags().StringVar(&seedFile, "seed", "", "treatments JSON to load at startup (memory driver)")
	return cmd
}

func runServer(envFile, seedFile string) error {
	cfg, log, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("open store")
		return err
	}
	defer be.Close()

	if err := be.prepare(ctx, seedFile, log); err != nil {
		log.Error().Err(err).Msg("startup aborted")
		return err
	}

	var catalog store.Catalog = be.repo
	cached, err := be.catalogCache(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, serving catalog from the store")
	} else if cached != nil {
		catalog = cached
	}
	pub, err := be.publisher(cfg, log)
	if err != nil {
		return err
	}

	authz := auth.New(be.repo, cfg.JWTSecret, auth.WithPublisher(pub), auth.WithLogger(log))
	slots := availability.New(catalog, be.repo, be.repo)
	admission := booking.New(be.repo, pub, log)
	h := handler.New(slots, admission, authz, be.repo, log)

	// grpc server
	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.UnaryRecovery(log),
			middleware.UnaryLogger(log),
			middleware.RateLimit(rl),
			middleware.Auth(authz, cfg.OpenDirectory),
		),
	)
	pb.RegisterClinicServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errc := make(chan error, 3)
	go func() {
		log.Info().Str("port", cfg.GRPCPort).Msg("grpc listening")
		errc <- srv.Serve(lis)
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, gweb.Config{CORSOrigins: cfg.CORSOrigins}, log)
	if err != nil {
		srv.Stop()
		return err
	}
	defer bridge.Close()

	api := rest.New(slots, admission, authz, be.repo, rl, log, rest.Config{
		CORSOrigins:   cfg.CORSOrigins,
		OpenDirectory: cfg.OpenDirectory,
	})
	servers := []*http.Server{
		{Addr: ":" + cfg.WebPort, Handler: bridge.Handler(), ReadHeaderTimeout: 10 * time.Second},
		{Addr: ":" + cfg.HTTPPort, Handler: api.Routes(), ReadHeaderTimeout: 10 * time.Second},
	}
	for _, s := range servers {
		s := s
		go func() {
			log.Info().Str("addr", s.Addr).Msg("http listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err = <-errc:
		log.Error().Err(err).Msg("listener failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Str("addr", s.Addr).Msg("http shutdown")
		}
	}
	srv.GracefulStop()
	log.Info().Msg("server stopped")
	return err
}
