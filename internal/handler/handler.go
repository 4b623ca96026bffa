package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "treatment-booking-api/api/clinic/v1"
	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/availability"
	"treatment-booking-api/internal/booking"
	"treatment-booking-api/internal/middleware"
	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

type Handler struct {
	pb.UnimplementedClinicServiceServer
	slots    *availability.Resolver
	bookings *booking.Controller
	auth     *auth.Authorizer
	users    store.Users
	log      zerolog.Logger
}

func New(slots *availability.Resolver, bookings *booking.Controller, a *auth.Authorizer, users store.Users, log zerolog.Logger) *Handler {
	return &Handler{slots: slots, bookings: bookings, auth: a, users: users, log: log}
}

var _ pb.ClinicServiceServer = (*Handler)(nil)

// toStatus maps service errors to gRPC codes. Anything unclassified is
// logged and reported as Internal without detail.
func (h *Handler) toStatus(err error, op string) error {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, auth.ErrUnauthorized.Error())
	case errors.Is(err, auth.ErrForbidden), errors.Is(err, auth.ErrUnknownAccount):
		return status.Error(codes.PermissionDenied, auth.ErrForbidden.Error())
	case errors.Is(err, model.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, store.ErrInvalidID):
		return status.Error(codes.InvalidArgument, "invalid id")
	case errors.Is(err, store.ErrDuplicate):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.log.Error().Err(err).Str("op", op).Msg("request failed")
	return status.Error(codes.Internal, "internal error")
}

// caller returns the verified email the auth interceptor stored.
func caller(ctx context.Context) (string, error) {
	email := middleware.EmailFrom(ctx)
	if email == "" {
		return "", auth.ErrUnauthorized
	}
	return email, nil
}
