// Package grpcweb lets browsers reach the gRPC server. Requests are
// unframed, forwarded byte for byte over a loopback client connection,
// and the reply is framed back with a trailer carrying the status.
package grpcweb

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"treatment-booking-api/internal/middleware"
)

type Config struct {
	// CORSOrigins defaults to any origin.
	CORSOrigins []string
}

type Bridge struct {
	conn *grpc.ClientConn
	cfg  Config
	log  zerolog.Logger
}

// New dials the gRPC server at addr without TLS. opts follow the
// transport credentials, so tests can add a context dialer.
func New(addr string, cfg Config, log zerolog.Logger, opts ...grpc.DialOption) (*Bridge, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return &Bridge{conn: conn, cfg: cfg, log: log.With().Str("component", "grpcweb").Logger()}, nil
}

func (b *Bridge) Close() error { return b.conn.Close() }

func (b *Bridge) Handler() http.Handler {
	c := cors.Handler(cors.Options{
		AllowedOrigins: b.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Grpc-Web", "X-User-Agent"},
		ExposedHeaders: []string{"Grpc-Status", "Grpc-Message"},
		MaxAge:         86400,
	})
	return c(http.HandlerFunc(b.serve))
}

func (b *Bridge) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method != http.MethodPost:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	case !strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc-web"):
		http.Error(w, "expected application/grpc-web", http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessage+headerLen))
	if err != nil {
		respond(w, nil, status.New(codes.Internal, "read body failed"))
		return
	}
	payload, err := unframe(body)
	if err != nil {
		respond(w, nil, status.New(codes.InvalidArgument, err.Error()))
		return
	}

	md := metadata.Pairs(middleware.ForwardedForKey, clientHost(r.RemoteAddr))
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	var out passthrough
	if err := b.conn.Invoke(ctx, r.URL.Path, &passthrough{payload}, &out, grpc.ForceCodec(passthroughCodec{})); err != nil {
		st := status.Convert(err)
		b.log.Debug().Str("method", r.URL.Path).Stringer("code", st.Code()).Msg("forwarded call failed")
		respond(w, nil, st)
		return
	}
	respond(w, out.data, status.New(codes.OK, ""))
}

func clientHost(addr string) string {
	if h, _, err := net.SplitHostPort(addr); err == nil {
		return h
	}
	return addr
}
