package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by what the caller should do about it.
type Kind string

const (
	// KindValidation means the caller input is wrong. Never retried.
	KindValidation Kind = "VALIDATION"
	// KindAuth means a credential or authorization failure. Never retried.
	KindAuth Kind = "AUTH"
	// KindNetwork means a transient backend failure. Retried.
	KindNetwork Kind = "NETWORK"
	// KindServer means a backend-reported failure. Retried unless marked permanent.
	KindServer Kind = "SERVER"
)

// GenericFailureMessage is shown to callers for anything that is not a validation failure.
const GenericFailureMessage = "A temporary failure occurred. Please try again later."

// Domain errors
var (
	ErrOfferRuleViolation = errors.New("offer rule violation")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrRequestNotFound    = errors.New("loan request not found")
	ErrDuplicateRequest   = errors.New("pending request already exists")
	ErrMissingDocument    = errors.New("borrower identity document is missing")
	ErrRequestNotPending  = errors.New("loan request is not pending")
	ErrLenderMismatch     = errors.New("offer belongs to another lender")
	ErrUserNotFound       = errors.New("user not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrConcurrentUpdate   = errors.New("record changed concurrently")
	ErrTemporaryFailure   = errors.New("temporary failure")
	ErrEmailTaken         = errors.New("email already registered")
)

// AppError carries a failure kind together with a machine code and a message.
type AppError struct {
	Kind      Kind
	Code      string
	Message   string
	Err       error
	Permanent bool
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code != "" && e.Code == t.Code
}

// NewAppError creates a new application error
func NewAppError(kind Kind, code, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeOfferRuleViolation = "OFFER_RULE_VIOLATION"
	ErrCodeOfferNotFound      = "OFFER_NOT_FOUND"
	ErrCodeRequestNotFound    = "REQUEST_NOT_FOUND"
	ErrCodeDuplicateRequest   = "DUPLICATE_REQUEST"
	ErrCodeMissingDocument    = "MISSING_DOCUMENT"
	ErrCodeRequestNotPending  = "REQUEST_NOT_PENDING"
	ErrCodeLenderMismatch     = "LENDER_MISMATCH"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeRewardNotFound     = "REWARD_NOT_FOUND"
	ErrCodeInsufficientPoints = "INSUFFICIENT_POINTS"
	ErrCodeConcurrentUpdate   = "CONCURRENT_UPDATE"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeConnectionError    = "CONNECTION_ERROR"
	ErrCodeAuthError          = "AUTH_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
	ErrCodeRetriesExhausted   = "RETRIES_EXHAUSTED"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
)

// KindOf reports the kind of err. Unclassified errors read as KindServer.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

// IsRetryable reports whether err may succeed on a later attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return true
	}
	switch appErr.Kind {
	case KindValidation, KindAuth:
		return false
	case KindServer:
		return !appErr.Permanent
	default:
		return true
	}
}

// UserMessage returns the text that may be shown to an end user. Only validation
// failures expose their own message; backend error strings never leave this function.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind == KindValidation {
		return appErr.Message
	}
	return GenericFailureMessage
}

// Validation creates a caller-correctable error with a human readable reason.
func Validation(code, message string, err error) *AppError {
	return NewAppError(KindValidation, code, message, err)
}

func WrapOfferRuleViolation(rule, reason string) *AppError {
	return Validation(
		ErrCodeOfferRuleViolation,
		reason,
		fmt.Errorf("%w: %s", ErrOfferRuleViolation, rule),
	)
}

func WrapOfferNotFound(offerID string) *AppError {
	return Validation(
		ErrCodeOfferNotFound,
		fmt.Sprintf("Offer %s not found", offerID),
		ErrOfferNotFound,
	)
}

func WrapRequestNotFound(requestID string) *AppError {
	return Validation(
		ErrCodeRequestNotFound,
		fmt.Sprintf("Loan request %s not found", requestID),
		ErrRequestNotFound,
	)
}

func WrapDuplicateRequest(offerID, borrowerID string) *AppError {
	return Validation(
		ErrCodeDuplicateRequest,
		fmt.Sprintf("Borrower %s already has a pending request for offer %s", borrowerID, offerID),
		ErrDuplicateRequest,
	)
}

func WrapMissingDocument(borrowerID string) *AppError {
	return Validation(
		ErrCodeMissingDocument,
		fmt.Sprintf("Borrower %s must register an identity document (CPF/CNPJ) before requesting a loan", borrowerID),
		ErrMissingDocument,
	)
}

func WrapRequestNotPending(requestID, status string) *AppError {
	return Validation(
		ErrCodeRequestNotPending,
		fmt.Sprintf("Loan request %s is no longer pending (status %s)", requestID, status),
		ErrRequestNotPending,
	)
}

func WrapUserNotFound(userID string) *AppError {
	return Validation(
		ErrCodeUserNotFound,
		fmt.Sprintf("User %s not found", userID),
		ErrUserNotFound,
	)
}

func WrapRewardNotFound(rewardID string) *AppError {
	return Validation(
		ErrCodeRewardNotFound,
		fmt.Sprintf("Reward %s not found", rewardID),
		ErrRewardNotFound,
	)
}

func WrapInsufficientPoints(balance, cost int64) *AppError {
	return Validation(
		ErrCodeInsufficientPoints,
		fmt.Sprintf("Insufficient points for this reward: balance %d, cost %d", balance, cost),
		ErrInsufficientPoints,
	)
}

func WrapEmailTaken(email string) *AppError {
	return Validation(
		ErrCodeEmailTaken,
		fmt.Sprintf("Email %s is already registered", email),
		ErrEmailTaken,
	)
}

func WrapLenderMismatch(requestID, lenderID string) *AppError {
	return NewAppError(
		KindAuth,
		ErrCodeLenderMismatch,
		fmt.Sprintf("Lender %s may not decide loan request %s", lenderID, requestID),
		ErrLenderMismatch,
	)
}

// WrapConcurrentUpdate reports a lost compare-and-set. Retrying re-reads fresh state.
func WrapConcurrentUpdate(entity, id string) *AppError {
	return NewAppError(
		KindServer,
		ErrCodeConcurrentUpdate,
		fmt.Sprintf("%s %s changed concurrently", entity, id),
		ErrConcurrentUpdate,
	)
}

func WrapDatabaseError(err error) *AppError {
	return NewAppError(
		KindServer,
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapConnectionError(err error) *AppError {
	return NewAppError(
		KindNetwork,
		ErrCodeConnectionError,
		"backend unreachable",
		err,
	)
}

func WrapAuthError(err error) *AppError {
	return NewAppError(
		KindAuth,
		ErrCodeAuthError,
		"backend rejected credentials",
		err,
	)
}

func WrapCacheError(err error) *AppError {
	return NewAppError(
		KindServer,
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// WrapRetriesExhausted turns the last failure of a retry loop into a NETWORK error.
func WrapRetriesExhausted(err error) *AppError {
	return NewAppError(
		KindNetwork,
		ErrCodeRetriesExhausted,
		GenericFailureMessage,
		errors.Join(ErrTemporaryFailure, err),
	)
}

// MarkPermanent flags a SERVER error as not worth retrying.
func MarkPermanent(e *AppError) *AppError {
	e.Permanent = true
	return e
}
