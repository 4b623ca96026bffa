package handler

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "treatment-booking-api/api/clinic/v1"
	"treatment-booking-api/internal/model"
)

func toProtoOptions(in []model.Availability) []*pb.TreatmentAvailability {
	out := make([]*pb.TreatmentAvailability, 0, len(in))
	for _, a := range in {
		out = append(out, &pb.TreatmentAvailability{Name: a.Name, Slots: a.Slots})
	}
	return out
}

func toProtoBooking(b *model.Booking) *pb.Booking {
	out := &pb.Booking{
		Id:              b.ID,
		Email:           b.Email,
		Treatment:       b.Treatment,
		AppointmentDate: b.AppointmentDate,
		Slot:            b.Slot,
		Details:         b.Details,
	}
	if !b.CreatedAt.IsZero() {
		out.CreatedAt = timestamppb.New(b.CreatedAt)
	}
	return out
}

func fromProtoBooking(b *pb.Booking) model.Booking {
	if b == nil {
		return model.Booking{}
	}
	// id and createdAt are assigned by the store
	return model.Booking{
		Email:           b.Email,
		Treatment:       b.Treatment,
		AppointmentDate: b.AppointmentDate,
		Slot:            b.Slot,
		Details:         b.Details,
	}
}

func toProtoUser(u *model.UserAccount) *pb.UserAccount {
	return &pb.UserAccount{Id: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}
