package clinicv1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestBookingWire(t *testing.T) {
	in := &Booking{
		Id:              "b1",
		Email:           "a@x.com",
		Treatment:       "Cleaning",
		AppointmentDate: "2024-01-05",
		Slot:            "10am",
		Details:         map[string]string{"patient": "Ann", "phone": "555", "price": ""},
		CreatedAt:       timestamppb.New(time.Date(2024, 1, 1, 8, 30, 0, 500, time.UTC)),
	}
	out := &Booking{}
	require.NoError(t, out.UnmarshalWire(in.MarshalWire()))
	assert.Equal(t, in.Details, out.Details)
	assert.True(t, in.CreatedAt.AsTime().Equal(out.CreatedAt.AsTime()))
	out.Details, out.CreatedAt, in.Details, in.CreatedAt = nil, nil, nil, nil
	assert.Equal(t, in, out)
}

func TestBookingDetailsEncodedInKeyOrder(t *testing.T) {
	a := &Booking{Details: map[string]string{"z": "1", "a": "2", "m": "3"}}
	assert.Equal(t, a.MarshalWire(), a.MarshalWire())
}

func TestAvailabilityKeepsEmptySlotList(t *testing.T) {
	in := &ListAvailabilityResponse{Options: []*TreatmentAvailability{
		{Name: "Cleaning", Slots: []string{"9am", "11am"}},
		{Name: "Whitening"},
	}}
	out := &ListAvailabilityResponse{}
	require.NoError(t, out.UnmarshalWire(in.MarshalWire()))
	require.Len(t, out.Options, 2)
	assert.Equal(t, []string{"9am", "11am"}, out.Options[0].Slots)
	assert.Equal(t, "Whitening", out.Options[1].Name)
	assert.Empty(t, out.Options[1].Slots)
}

func TestCreateBookingResponseRejected(t *testing.T) {
	in := &CreateBookingResponse{Reason: "you have booked an appointment on 2024-01-05"}
	out := &CreateBookingResponse{Accepted: true}
	require.NoError(t, out.UnmarshalWire(in.MarshalWire()))
	assert.False(t, out.Accepted)
	assert.Nil(t, out.Booking)
	assert.Equal(t, in.Reason, out.Reason)
}

func TestPromoteResponseWire(t *testing.T) {
	in := &PromoteToAdminResponse{MatchedCount: 1, ModifiedCount: 1}
	out := &PromoteToAdminResponse{}
	require.NoError(t, out.UnmarshalWire(in.MarshalWire()))
	assert.Equal(t, in, out)
}

func TestUnknownFieldsSkipped(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = appendString(b, 1, "a@x.com")
	b = protowire.AppendTag(b, 10, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")

	out := &IssueTokenRequest{}
	require.NoError(t, out.UnmarshalWire(b))
	assert.Equal(t, "a@x.com", out.Email)
}

func TestTruncatedMessageFails(t *testing.T) {
	b := (&UserAccount{Email: "a@x.com"}).MarshalWire()
	err := (&UserAccount{}).UnmarshalWire(b[:len(b)-2])
	assert.Error(t, err)
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	_, err := Codec{}.Marshal("not a message")
	assert.Error(t, err)
	assert.Error(t, Codec{}.Unmarshal(nil, 42))
	assert.Equal(t, "proto", Codec{}.Name())
}
