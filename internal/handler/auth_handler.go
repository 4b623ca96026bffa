package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/timestamppb"

	pb "treatment-booking-api/api/clinic/v1"
)

func (h *Handler) IssueToken(ctx context.Context, req *pb.IssueTokenRequest) (*pb.IssueTokenResponse, error) {
	tok, err := h.auth.IssueToken(ctx, req.Email)
	if err != nil {
		return nil, h.toStatus(err, "IssueToken")
	}
	return &pb.IssueTokenResponse{AccessToken: tok.Value, ExpiresAt: timestamppb.New(tok.ExpiresAt)}, nil
}

func (h *Handler) CheckAdmin(ctx context.Context, req *pb.CheckAdminRequest) (*pb.CheckAdminResponse, error) {
	ok, err := h.auth.IsAdmin(ctx, req.Email)
	if err != nil {
		return nil, h.toStatus(err, "CheckAdmin")
	}
	return &pb.CheckAdminResponse{IsAdmin: ok}, nil
}

func (h *Handler) PromoteToAdmin(ctx context.Context, req *pb.PromoteToAdminRequest) (*pb.PromoteToAdminResponse, error) {
	email, err := caller(ctx)
	if err != nil {
		return nil, h.toStatus(err, "PromoteToAdmin")
	}
	res, err := h.auth.PromoteToAdmin(ctx, email, req.Id)
	if err != nil {
		return nil, h.toStatus(err, "PromoteToAdmin")
	}
	return &pb.PromoteToAdminResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedId:    res.UpsertedID,
	}, nil
}
