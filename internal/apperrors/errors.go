package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrAlreadySettled indicates that an obligation has already been settled and
// must not produce a second cash-flow entry.
var ErrAlreadySettled = errors.New("obligation already settled")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// PartialCascadeError reports a best-effort group deletion that removed only
// part of an installment group. Deleted holds the number of obligations that
// were removed; FailedIDs lists the ones that were not.
type PartialCascadeError struct {
	GroupID   string
	Deleted   int
	FailedIDs []string
	Causes    []error
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("cascade deletion of group %s incomplete: %d deleted, failed ids [%s]",
		e.GroupID, e.Deleted, strings.Join(e.FailedIDs, ", "))
}

func (e *PartialCascadeError) Unwrap() []error {
	return e.Causes
}

// SettlementLedgerError reports a settlement whose status update succeeded but
// whose cash-flow entry could not be written. The obligation is left SETTLED
// with no corresponding ledger entry and needs manual attention.
type SettlementLedgerError struct {
	ObligationID string
	Cause        error
}

func (e *SettlementLedgerError) Error() string {
	return fmt.Sprintf("obligation %s settled but cash-flow entry was not recorded: %v", e.ObligationID, e.Cause)
}

func (e *SettlementLedgerError) Unwrap() error {
	return e.Cause
}
