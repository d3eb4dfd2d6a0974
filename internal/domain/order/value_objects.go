package order

import (
	"errors"
	"strings"
)

var (
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrMissingContactInfo = errors.New("customer contact info is incomplete")
	ErrMissingAddress     = errors.New("billing address is incomplete")
	ErrInvalidCardInfo    = errors.New("payment card info is invalid")
)

// Money is an amount in integer minor currency units (cents).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MultiplyBy(n int32) Money {
	return Money{cents: m.cents * int64(n)}
}

type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func NewCustomerInfo(firstName, lastName, email, phone string) (CustomerInfo, error) {
	ci := CustomerInfo{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
	}
	if ci.FirstName == "" || ci.LastName == "" || ci.Email == "" {
		return CustomerInfo{}, ErrMissingContactInfo
	}
	return ci, nil
}

type BillingAddress struct {
	Address string
	City    string
	State   string
	ZipCode string
}

func NewBillingAddress(address, city, state, zipCode string) (BillingAddress, error) {
	ba := BillingAddress{
		Address: strings.TrimSpace(address),
		City:    strings.TrimSpace(city),
		State:   strings.TrimSpace(state),
		ZipCode: strings.TrimSpace(zipCode),
	}
	if ba.Address == "" || ba.City == "" || ba.ZipCode == "" {
		return BillingAddress{}, ErrMissingAddress
	}
	return ba, nil
}

// PaymentInfo is the card metadata retained on the order record. Only the
// last four digits are ever stored.
type PaymentInfo struct {
	LastFour       string
	CardholderName string
}

func NewPaymentInfo(lastFour, cardholderName string) (PaymentInfo, error) {
	pi := PaymentInfo{
		LastFour:       strings.TrimSpace(lastFour),
		CardholderName: strings.TrimSpace(cardholderName),
	}
	if len(pi.LastFour) != 4 || pi.CardholderName == "" {
		return PaymentInfo{}, ErrInvalidCardInfo
	}
	for _, r := range pi.LastFour {
		if r < '0' || r > '9' {
			return PaymentInfo{}, ErrInvalidCardInfo
		}
	}
	return pi, nil
}
