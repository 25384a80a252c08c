// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package abcerr defines the abstract error-kind taxonomy shared by every
// layer of abc-core, from on-disk decode failures up through the auth
// server's wire error codes. A single [Error] type carries the kind plus
// whatever out-of-band payload that kind implies (an OTP reset token, a PIN
// lockout countdown) so callers match on a kind, not a string.
package abcerr

import "fmt"

// Kind is one of the abstract error categories every public entry point in
// abc-core can fail with.
type Kind int

const (
	Ok Kind = iota
	Generic
	NullPointer
	JsonError
	NotSupported
	FileDoesNotExist
	FileReadError
	FileOpenError
	SysError
	DirReadError
	DecryptError
	DecryptFailure
	EncryptError
	UnknownCryptoType
	InvalidCryptoType
	ScryptError
	ServerError
	NetworkError
	ParseError
	AccountAlreadyExists
	AccountDoesNotExist
	BadPassword
	InvalidPinWait
	InvalidOTP
	Obsolete
	NoRecoveryQuestions
	InvalidWalletID
	PinExpired
	Reinitialization
	NotInitialized
	MutexError
	InvalidAnswers
)

var kindNames = map[Kind]string{
	Ok:                   "Ok",
	Generic:              "Generic",
	NullPointer:          "NullPointer",
	JsonError:            "JsonError",
	NotSupported:         "NotSupported",
	FileDoesNotExist:     "FileDoesNotExist",
	FileReadError:        "FileReadError",
	FileOpenError:        "FileOpenError",
	SysError:             "SysError",
	DirReadError:         "DirReadError",
	DecryptError:         "DecryptError",
	DecryptFailure:       "DecryptFailure",
	EncryptError:         "EncryptError",
	UnknownCryptoType:    "UnknownCryptoType",
	InvalidCryptoType:    "InvalidCryptoType",
	ScryptError:          "ScryptError",
	ServerError:          "ServerError",
	NetworkError:         "NetworkError",
	ParseError:           "ParseError",
	AccountAlreadyExists: "AccountAlreadyExists",
	AccountDoesNotExist:  "AccountDoesNotExist",
	BadPassword:          "BadPassword",
	InvalidPinWait:       "InvalidPinWait",
	InvalidOTP:           "InvalidOTP",
	Obsolete:             "Obsolete",
	NoRecoveryQuestions:  "NoRecoveryQuestions",
	InvalidWalletID:      "InvalidWalletID",
	PinExpired:           "PinExpired",
	Reinitialization:     "Reinitialization",
	NotInitialized:       "NotInitialized",
	MutexError:           "MutexError",
	InvalidAnswers:       "InvalidAnswers",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type every abc-core public entry point returns
// on failure. Out-of-band payloads that used to travel as mutable
// out-parameters (the OTP reset token/date, the PIN lockout countdown) are
// carried as fields here instead, populated only when Kind implies them.
type Error struct {
	Kind    Kind
	Message string

	// Err is the wrapped lower-layer error, if any. Exactly one wrap per
	// propagation hop, per the error policy every flow follows.
	Err error

	// WaitSeconds is set on BadPassword / InvalidPinWait: the lockout
	// window the caller must wait out before retrying.
	WaitSeconds int

	// OTPResetToken and OTPResetDate are set on InvalidOTP: the token and
	// date the caller can present in a "request 2FA reset" UI.
	OTPResetToken string
	OTPResetDate  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error of kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of kind wrapping err, with a single optional
// message, per abc-core's "bubble with one wrap" propagation policy.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithWait attaches a lockout countdown to e and returns e for chaining.
func (e *Error) WithWait(seconds int) *Error {
	e.WaitSeconds = seconds
	return e
}

// WithOTPReset attaches an OTP reset token/date to e and returns e for
// chaining.
func (e *Error) WithOTPReset(token, date string) *Error {
	e.OTPResetToken = token
	e.OTPResetDate = date
	return e
}

// Is reports whether err is an *Error of the given kind, unwrapping through
// any number of intermediate wraps.
func Is(err error, kind Kind) bool {
	for err != nil {
		if ae, ok := err.(*Error); ok {
			if ae.Kind == kind {
				return true
			}
			err = ae.Err
			continue
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
