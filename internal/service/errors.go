package service

import "errors"

var (
	ErrProductUnavailable     = errors.New("product is not available for purchase")
	ErrCartNotConfirmed       = errors.New("cart has not been confirmed")
	ErrPaymentAlreadyResolved = errors.New("a payment for this session was already resolved")
	ErrAmountMismatch         = errors.New("amount does not match the payment")
	ErrSessionMismatch        = errors.New("payment does not belong to this session")
	ErrAlreadyPreparing       = errors.New("order is already in preparation")
)
