package handler

import (
	"context"

	pb "treatment-booking-api/api/clinic/v1"
	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/model"
)

func (h *Handler) ListAvailability(ctx context.Context, req *pb.ListAvailabilityRequest) (*pb.ListAvailabilityResponse, error) {
	opts, err := h.slots.Compute(ctx, req.Date)
	if err != nil {
		return nil, h.toStatus(err, "ListAvailability")
	}
	return &pb.ListAvailabilityResponse{Options: toProtoOptions(opts)}, nil
}

func (h *Handler) ListAvailabilityJoined(ctx context.Context, req *pb.ListAvailabilityRequest) (*pb.ListAvailabilityResponse, error) {
	opts, err := h.slots.ComputeJoined(ctx, req.Date)
	if err != nil {
		return nil, h.toStatus(err, "ListAvailabilityJoined")
	}
	return &pb.ListAvailabilityResponse{Options: toProtoOptions(opts)}, nil
}

func (h *Handler) ListBookings(ctx context.Context, req *pb.ListBookingsRequest) (*pb.ListBookingsResponse, error) {
	email, err := caller(ctx)
	if err != nil {
		return nil, h.toStatus(err, "ListBookings")
	}
	if err := auth.RequireSelf(email, req.Email); err != nil {
		return nil, h.toStatus(err, "ListBookings")
	}

	list, err := h.bookings.ListForEmail(ctx, req.Email)
	if err != nil {
		return nil, h.toStatus(err, "ListBookings")
	}
	out := make([]*pb.Booking, 0, len(list))
	for i := range list {
		out = append(out, toProtoBooking(&list[i]))
	}
	return &pb.ListBookingsResponse{Bookings: out}, nil
}

func (h *Handler) CreateBooking(ctx context.Context, req *pb.CreateBookingRequest) (*pb.CreateBookingResponse, error) {
	b := fromProtoBooking(req.GetBooking())
	if err := model.Validate(&b); err != nil {
		return nil, h.toStatus(err, "CreateBooking")
	}

	res, err := h.bookings.Submit(ctx, b)
	if err != nil {
		return nil, h.toStatus(err, "CreateBooking")
	}
	if !res.Accepted {
		return &pb.CreateBookingResponse{Reason: res.Reason}, nil
	}
	return &pb.CreateBookingResponse{Accepted: true, Booking: toProtoBooking(res.Booking)}, nil
}
