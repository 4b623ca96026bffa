package model

import "time"

type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
)

// TreatmentOption is a catalog entry: a treatment and every slot it can
// ever be booked into, independent of date.
type TreatmentOption struct {
	ID    string   `json:"_id,omitempty"`
	Name  string   `json:"name" validate:"required"`
	Slots []string `json:"slots" validate:"dive,required"`
}

type Booking struct {
	ID              string            `json:"_id,omitempty"`
	Email           string            `json:"email" validate:"required,email"`
	Treatment       string            `json:"treatment" validate:"required"`
	AppointmentDate string            `json:"appointmentDate" validate:"required"`
	Slot            string            `json:"slot" validate:"required"`
	Details         map[string]string `json:"details,omitempty"`
	CreatedAt       time.Time         `json:"createdAt,omitempty"`
}

type UserAccount struct {
	ID        string    `json:"_id,omitempty"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func (u *UserAccount) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Availability is what is left of one treatment's slots on a given date.
type Availability struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}
