package handler

import (
	"context"

	pb "treatment-booking-api/api/clinic/v1"
	"treatment-booking-api/internal/model"
)

func (h *Handler) ListUsers(ctx context.Context, _ *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {
	users, err := h.users.ListUsers(ctx)
	if err != nil {
		return nil, h.toStatus(err, "ListUsers")
	}
	out := make([]*pb.UserAccount, 0, len(users))
	for i := range users {
		out = append(out, toProtoUser(&users[i]))
	}
	return &pb.ListUsersResponse{Users: out}, nil
}

// CreateUser registers an account. A role in the request is ignored; only
// PromoteToAdmin grants admin.
func (h *Handler) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.CreateUserResponse, error) {
	in := req.GetUser()
	if in == nil {
		in = &pb.UserAccount{}
	}
	u := &model.UserAccount{Email: in.Email, Name: in.Name, Role: model.RoleNone}
	if err := model.Validate(u); err != nil {
		return nil, h.toStatus(err, "CreateUser")
	}
	if err := h.users.CreateUser(ctx, u); err != nil {
		return nil, h.toStatus(err, "CreateUser")
	}
	return &pb.CreateUserResponse{User: toProtoUser(u)}, nil
}
