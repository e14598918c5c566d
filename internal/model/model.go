package model

import "time"

// DateLayout is the wire and storage form of a calendar date.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID        int64
	Email     string
	Name      string
	Age       *int
	Gender    *string
	Date      time.Time
	Time      string
	Address   string
	CreatedAt time.Time
}

type Address struct {
	ID        int64     `json:"id"`
	DoorNo    *string   `json:"doorNo"`
	Street    string    `json:"street"`
	Landmark  *string   `json:"landmark"`
	Area      string    `json:"area"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}
