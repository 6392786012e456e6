/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abe

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the failure modes a caller of this package needs to
// distinguish: a syntax error in a policy string is recoverable by asking
// the user to fix it, a PolicyMismatch is a routine access-control denial,
// a FieldInverse indicates corrupt key material.
type Kind int

const (
	// PolicyParse is returned for syntactically invalid policy strings.
	PolicyParse Kind = iota
	// PolicyShape is returned for a syntactically valid but structurally
	// invalid policy (a gate with fewer than two children, or an AND gate
	// with more than two children reaching the LSSS compiler).
	PolicyShape
	// PolicyMismatch is returned when a ciphertext's attribute set does
	// not satisfy a secret key's policy.
	PolicyMismatch
	// UnknownAttribute is returned when a policy or ciphertext names an
	// attribute absent from the relevant key.
	UnknownAttribute
	// EmptyInput is returned for an empty attribute set or empty
	// plaintext at Encrypt.
	EmptyInput
	// FieldInverse is returned when inverting the zero element of Fr is
	// attempted; it indicates a corrupt master key.
	FieldInverse
	// SymmetricFailure is returned when the AEAD envelope fails to seal
	// or open (bad key, tampered ciphertext).
	SymmetricFailure
	// TypeConfusion is returned when a Public attribute value is read
	// where a Private one is stored, or vice versa.
	TypeConfusion
)

func (k Kind) String() string {
	switch k {
	case PolicyParse:
		return "PolicyParse"
	case PolicyShape:
		return "PolicyShape"
	case PolicyMismatch:
		return "PolicyMismatch"
	case UnknownAttribute:
		return "UnknownAttribute"
	case EmptyInput:
		return "EmptyInput"
	case FieldInverse:
		return "FieldInverse"
	case SymmetricFailure:
		return "SymmetricFailure"
	case TypeConfusion:
		return "TypeConfusion"
	default:
		return "Unknown"
	}
}

// Error is the error type returned throughout this package. It carries a
// Kind so callers can branch on failure class with errors.As, and an
// optional wrapped cause for diagnostics.
type Error struct {
	Kind   Kind
	Msg    string
	Offset int // byte offset into the policy source for PolicyParse errors tied to a position; -1 otherwise
	cause  error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Kind, e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Offset: -1}
}

func newErrAt(kind Kind, msg string, offset int) *Error {
	return &Error{Kind: kind, Msg: msg, Offset: offset}
}

func wrapErr(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Offset: -1, cause: errors.Wrap(cause, msg)}
}
