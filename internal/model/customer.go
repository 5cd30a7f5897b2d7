package model

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Customer field constraints.
const (
	CustomerNameMin  = 3
	CustomerNameMax  = 50
	CustomerPhoneMin = 7
	CustomerPhoneMax = 10
)

// Customer is a person who rents movies. Gold customers exist for future
// pricing rules; the flag is stored but not interpreted anywhere yet.
//
// Fields:
//  ID     – primary key identifier.
//  Name   – customer name.
//  Phone  – phone number, digits only.
//  IsGold – gold membership flag.
type Customer struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	IsGold bool   `json:"isGold"`
}

// Validate checks the customer against its field constraints.
func (c Customer) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(CustomerNameMin, CustomerNameMax)),
		validation.Field(&c.Phone, validation.Required, validation.Length(CustomerPhoneMin, CustomerPhoneMax)),
	)
}
