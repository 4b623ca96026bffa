package clinicv1

import (
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type TreatmentAvailability struct {
	Name  string
	Slots []string
}

func (m *TreatmentAvailability) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.Name)
	for _, s := range m.Slots {
		// repeated strings keep empty entries
		out = protowire.AppendTag(out, 2, protowire.BytesType)
		out = protowire.AppendString(out, s)
	}
	return out
}

func (m *TreatmentAvailability) UnmarshalWire(b []byte) error {
	*m = TreatmentAvailability{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeStrings(typ, b, &m.Slots)
		}
		return 0, nil
	})
}

type ListAvailabilityRequest struct {
	Date string
}

func (m *ListAvailabilityRequest) MarshalWire() []byte { return appendString(nil, 1, m.Date) }

func (m *ListAvailabilityRequest) UnmarshalWire(b []byte) error {
	*m = ListAvailabilityRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Date)
		}
		return 0, nil
	})
}

type ListAvailabilityResponse struct {
	Options []*TreatmentAvailability
}

func (m *ListAvailabilityResponse) MarshalWire() []byte {
	var out []byte
	for _, o := range m.Options {
		out = appendMessage(out, 1, o)
	}
	return out
}

func (m *ListAvailabilityResponse) UnmarshalWire(b []byte) error {
	*m = ListAvailabilityResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		o := &TreatmentAvailability{}
		n, err := consumeMessage(typ, b, o)
		if n > 0 {
			m.Options = append(m.Options, o)
		}
		return n, err
	})
}

type Booking struct {
	Id              string
	Email           string
	Treatment       string
	AppointmentDate string
	Slot            string
	Details         map[string]string
	CreatedAt       *timestamppb.Timestamp
}

func (m *Booking) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.Id)
	out = appendString(out, 2, m.Email)
	out = appendString(out, 3, m.Treatment)
	out = appendString(out, 4, m.AppointmentDate)
	out = appendString(out, 5, m.Slot)

	keys := make([]string, 0, len(m.Details))
	for k := range m.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var entry []byte
		entry = appendString(entry, 1, k)
		entry = appendString(entry, 2, m.Details[k])
		out = protowire.AppendTag(out, 6, protowire.BytesType)
		out = protowire.AppendBytes(out, entry)
	}

	out = appendTimestamp(out, 7, m.CreatedAt)
	return out
}

func (m *Booking) UnmarshalWire(b []byte) error {
	*m = Booking{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Id)
		case 2:
			return consumeString(typ, b, &m.Email)
		case 3:
			return consumeString(typ, b, &m.Treatment)
		case 4:
			return consumeString(typ, b, &m.AppointmentDate)
		case 5:
			return consumeString(typ, b, &m.Slot)
		case 6:
			return m.consumeDetail(typ, b)
		case 7:
			return consumeTimestamp(typ, b, &m.CreatedAt)
		}
		return 0, nil
	})
}

func (m *Booking) consumeDetail(typ protowire.Type, b []byte) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	var key, val string
	err := decode(v, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &key)
		case 2:
			return consumeString(typ, b, &val)
		}
		return 0, nil
	})
	if err != nil {
		return 0, err
	}
	if m.Details == nil {
		m.Details = make(map[string]string)
	}
	m.Details[key] = val
	return n, nil
}

type CreateBookingRequest struct {
	Booking *Booking
}

func (m *CreateBookingRequest) GetBooking() *Booking {
	if m == nil {
		return nil
	}
	return m.Booking
}

func (m *CreateBookingRequest) MarshalWire() []byte {
	if m.Booking == nil {
		return nil
	}
	return appendMessage(nil, 1, m.Booking)
}

func (m *CreateBookingRequest) UnmarshalWire(b []byte) error {
	*m = CreateBookingRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		bk := &Booking{}
		n, err := consumeMessage(typ, b, bk)
		if n > 0 {
			m.Booking = bk
		}
		return n, err
	})
}

type CreateBookingResponse struct {
	Accepted bool
	Reason   string
	Booking  *Booking
}

func (m *CreateBookingResponse) MarshalWire() []byte {
	var out []byte
	out = appendBool(out, 1, m.Accepted)
	out = appendString(out, 2, m.Reason)
	if m.Booking != nil {
		out = appendMessage(out, 3, m.Booking)
	}
	return out
}

func (m *CreateBookingResponse) UnmarshalWire(b []byte) error {
	*m = CreateBookingResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeBool(typ, b, &m.Accepted)
		case 2:
			return consumeString(typ, b, &m.Reason)
		case 3:
			bk := &Booking{}
			n, err := consumeMessage(typ, b, bk)
			if n > 0 {
				m.Booking = bk
			}
			return n, err
		}
		return 0, nil
	})
}

type ListBookingsRequest struct {
	Email string
}

func (m *ListBookingsRequest) MarshalWire() []byte { return appendString(nil, 1, m.Email) }

func (m *ListBookingsRequest) UnmarshalWire(b []byte) error {
	*m = ListBookingsRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Email)
		}
		return 0, nil
	})
}

type ListBookingsResponse struct {
	Bookings []*Booking
}

func (m *ListBookingsResponse) MarshalWire() []byte {
	var out []byte
	for _, bk := range m.Bookings {
		out = appendMessage(out, 1, bk)
	}
	return out
}

func (m *ListBookingsResponse) UnmarshalWire(b []byte) error {
	*m = ListBookingsResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		bk := &Booking{}
		n, err := consumeMessage(typ, b, bk)
		if n > 0 {
			m.Bookings = append(m.Bookings, bk)
		}
		return n, err
	})
}

type IssueTokenRequest struct {
	Email string
}

func (m *IssueTokenRequest) MarshalWire() []byte { return appendString(nil, 1, m.Email) }

func (m *IssueTokenRequest) UnmarshalWire(b []byte) error {
	*m = IssueTokenRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Email)
		}
		return 0, nil
	})
}

type IssueTokenResponse struct {
	AccessToken string
	ExpiresAt   *timestamppb.Timestamp
}

func (m *IssueTokenResponse) MarshalWire() []byte {
	out := appendString(nil, 1, m.AccessToken)
	return appendTimestamp(out, 2, m.ExpiresAt)
}

func (m *IssueTokenResponse) UnmarshalWire(b []byte) error {
	*m = IssueTokenResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.AccessToken)
		case 2:
			return consumeTimestamp(typ, b, &m.ExpiresAt)
		}
		return 0, nil
	})
}

type UserAccount struct {
	Id    string
	Email string
	Name  string
	Role  string
}

func (m *UserAccount) MarshalWire() []byte {
	var out []byte
	out = appendString(out, 1, m.Id)
	out = appendString(out, 2, m.Email)
	out = appendString(out, 3, m.Name)
	out = appendString(out, 4, m.Role)
	return out
}

func (m *UserAccount) UnmarshalWire(b []byte) error {
	*m = UserAccount{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Id)
		case 2:
			return consumeString(typ, b, &m.Email)
		case 3:
			return consumeString(typ, b, &m.Name)
		case 4:
			return consumeString(typ, b, &m.Role)
		}
		return 0, nil
	})
}

type ListUsersRequest struct{}

func (*ListUsersRequest) MarshalWire() []byte { return nil }

func (*ListUsersRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}

type ListUsersResponse struct {
	Users []*UserAccount
}

func (m *ListUsersResponse) MarshalWire() []byte {
	var out []byte
	for _, u := range m.Users {
		out = appendMessage(out, 1, u)
	}
	return out
}

func (m *ListUsersResponse) UnmarshalWire(b []byte) error {
	*m = ListUsersResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		u := &UserAccount{}
		n, err := consumeMessage(typ, b, u)
		if n > 0 {
			m.Users = append(m.Users, u)
		}
		return n, err
	})
}

type CheckAdminRequest struct {
	Email string
}

func (m *CheckAdminRequest) MarshalWire() []byte { return appendString(nil, 1, m.Email) }

func (m *CheckAdminRequest) UnmarshalWire(b []byte) error {
	*m = CheckAdminRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Email)
		}
		return 0, nil
	})
}

type CheckAdminResponse struct {
	IsAdmin bool
}

func (m *CheckAdminResponse) MarshalWire() []byte { return appendBool(nil, 1, m.IsAdmin) }

func (m *CheckAdminResponse) UnmarshalWire(b []byte) error {
	*m = CheckAdminResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBool(typ, b, &m.IsAdmin)
		}
		return 0, nil
	})
}

type PromoteToAdminRequest struct {
	Id string
}

func (m *PromoteToAdminRequest) MarshalWire() []byte { return appendString(nil, 1, m.Id) }

func (m *PromoteToAdminRequest) UnmarshalWire(b []byte) error {
	*m = PromoteToAdminRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Id)
		}
		return 0, nil
	})
}

type PromoteToAdminResponse struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedId    string
}

func (m *PromoteToAdminResponse) MarshalWire() []byte {
	var out []byte
	out = appendInt64(out, 1, m.MatchedCount)
	out = appendInt64(out, 2, m.ModifiedCount)
	out = appendString(out, 3, m.UpsertedId)
	return out
}

func (m *PromoteToAdminResponse) UnmarshalWire(b []byte) error {
	*m = PromoteToAdminResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt64(typ, b, &m.MatchedCount)
		case 2:
			return consumeInt64(typ, b, &m.ModifiedCount)
		case 3:
			return consumeString(typ, b, &m.UpsertedId)
		}
		return 0, nil
	})
}

type CreateUserRequest struct {
	User *UserAccount
}

func (m *CreateUserRequest) GetUser() *UserAccount {
	if m == nil {
		return nil
	}
	return m.User
}

func (m *CreateUserRequest) MarshalWire() []byte {
	if m.User == nil {
		return nil
	}
	return appendMessage(nil, 1, m.User)
}

func (m *CreateUserRequest) UnmarshalWire(b []byte) error {
	*m = CreateUserRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		u := &UserAccount{}
		n, err := consumeMessage(typ, b, u)
		if n > 0 {
			m.User = u
		}
		return n, err
	})
}

type CreateUserResponse struct {
	User *UserAccount
}

func (m *CreateUserResponse) MarshalWire() []byte {
	if m.User == nil {
		return nil
	}
	return appendMessage(nil, 1, m.User)
}

func (m *CreateUserResponse) UnmarshalWire(b []byte) error {
	*m = CreateUserResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		u := &UserAccount{}
		n, err := consumeMessage(typ, b, u)
		if n > 0 {
			m.User = u
		}
		return n, err
	})
}
