package domain

import "time"

type AccountType string

const (
	AccountCustomer AccountType = "customer"
	AccountOwner    AccountType = "owner"
	AccountAdmin    AccountType = "admin"
)

// CurrentUser is the locally stored sign-in record. It is a flag, not a
// credential; request services only read it to stamp who submitted a request.
type CurrentUser struct {
	Email           string      `json:"email" validate:"required,email"`
	Name            string      `json:"name" validate:"required"`
	Phone           string      `json:"phone"`
	AccountType     AccountType `json:"account_type" validate:"omitempty,oneof=customer owner admin"`
	IsAuthenticated bool        `json:"is_authenticated"`
	Timestamp       time.Time   `json:"timestamp"`
}
