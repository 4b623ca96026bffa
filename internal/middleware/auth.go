package middleware

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "treatment-booking-api/api/clinic/v1"
	"treatment-booking-api/internal/auth"
)

type ctxKey string

// EmailKey holds the verified token email.
const EmailKey ctxKey = "email"

// skip auth for these
var open = map[string]bool{
	pb.ClinicService_ListAvailability_FullMethodName:       true,
	pb.ClinicService_ListAvailabilityJoined_FullMethodName: true,
	pb.ClinicService_CreateBooking_FullMethodName:          true,
	pb.ClinicService_IssueToken_FullMethodName:             true,
	pb.ClinicService_CreateUser_FullMethodName:             true,
}

// account directory, opened by OPEN_DIRECTORY
var directory = map[string]bool{
	pb.ClinicService_ListUsers_FullMethodName:  true,
	pb.ClinicService_CheckAdmin_FullMethodName: true,
}

// Authenticator turns an Authorization header into the token's email.
type Authenticator interface {
	Authenticate(header string) (string, error)
}

func EmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}

func authStatus(err error) error {
	if errors.Is(err, auth.ErrUnauthorized) {
		return status.Error(codes.Unauthenticated, auth.ErrUnauthorized.Error())
	}
	return status.Error(codes.PermissionDenied, auth.ErrForbidden.Error())
}

func Auth(a Authenticator, openDirectory bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] || (openDirectory && directory[info.FullMethod]) {
			return next(ctx, req)
		}

		header := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get("authorization"); len(vals) > 0 {
				header = vals[0]
			}
		}
		email, err := a.Authenticate(header)
		if err != nil {
			return nil, authStatus(err)
		}
		return next(WithEmail(ctx, email), req)
	}
}

// Bearer is the chi counterpart of Auth. unauthorized writes the
// rejection so the REST layer keeps a single error format.
func Bearer(a Authenticator, unauthorized func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := a.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}
