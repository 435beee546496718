// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apierr is the typed error taxonomy of the proxy: every failure
// the HTTP front-end can surface to a client carries a Kind that maps to an
// exact HTTP status, instead of ad-hoc status codes scattered across
// handlers.
package apierr

import (
	"errors"
	"net/http"
)

// Kind names one class of client-visible failure.
type Kind string

const (
	KindBadRequest          Kind = "BadRequest"
	KindParseError          Kind = "ParseError"
	KindQueryTypeNotAllowed Kind = "QueryTypeNotAllowed"
	KindMethodNotAllowed    Kind = "MethodNotAllowed"
	KindQueueFull           Kind = "QueueFull"
	KindBackendError        Kind = "BackendError"
	KindTimeout             Kind = "Timeout"
	KindCancelled           Kind = "Cancelled"
	KindInternal            Kind = "Internal"
)

// statusFor is the Kind -> HTTP status mapping. BackendError defaults to
// 502 here; callers that have an actual upstream status use Error.Status
// directly instead of this default.
var statusFor = map[Kind]int{
	KindBadRequest:          http.StatusBadRequest,
	KindParseError:          http.StatusBadRequest,
	KindQueryTypeNotAllowed: http.StatusBadRequest,
	KindMethodNotAllowed:    http.StatusMethodNotAllowed,
	KindQueueFull:           http.StatusServiceUnavailable,
	KindBackendError:        http.StatusBadGateway,
	KindTimeout:             http.StatusGatewayTimeout,
	KindCancelled:           http.StatusServiceUnavailable,
	KindInternal:            http.StatusInternalServerError,
}

// Error is the error type every layer above the normalizer/backend/queue
// deals in. Message is what the client sees in the JSON error body; Data
// carries the optional extra payload (e.g. the raw parser message).
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Data    any
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error for kind, defaulting Status from the taxonomy table
// when status is 0.
func New(kind Kind, status int, message string, data any) *Error {
	if status == 0 {
		status = statusFor[kind]
		if status == 0 {
			status = http.StatusInternalServerError
		}
	}
	return &Error{Kind: kind, Status: status, Message: message, Data: data}
}

// BadRequest, ParseError, etc. are convenience constructors for the
// taxonomy's common cases; each defers its HTTP status to statusFor.
func BadRequest(message string) *Error { return New(KindBadRequest, 0, message, nil) }

func ParseErrorf(message string, data any) *Error {
	return New(KindParseError, 0, message, data)
}

func QueryTypeNotAllowed(message string) *Error {
	return New(KindQueryTypeNotAllowed, 0, message, nil)
}

func MethodNotAllowed() *Error {
	return New(KindMethodNotAllowed, 0, "Method Not Allowed", nil)
}

func QueueFull() *Error {
	return New(KindQueueFull, 0, "queue is full", nil)
}

// Backend wraps an upstream failure, preserving its original status and
// body so the client sees what the upstream actually said.
func Backend(status int, body []byte) *Error {
	return New(KindBackendError, status, "backend error", string(body))
}

func Timeout() *Error {
	return New(KindTimeout, 0, "job timed out", nil)
}

func Cancelled() *Error {
	return New(KindCancelled, 0, "request was cancelled", nil)
}

func Internal(message string) *Error {
	return New(KindInternal, 0, message, nil)
}

// As reports whether err is an *Error, unwrapping through standard error
// wrapping if necessary.
func As(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}
