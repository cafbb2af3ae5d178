package httpx

import (
	"net/http"
	"strings"
)

// Outcome is the semantic result of an enveloped request.
type Outcome int

const (
	OutcomeSystemError Outcome = iota
	OutcomeNotFound
	OutcomeInvalidInput
	OutcomeFound
)

type outcomeText struct {
	code    string
	message string
}

var outcomes = map[Outcome]outcomeText{
	OutcomeSystemError:  {code: "SYS-ERR0000", message: "システムエラーが発生しました。"},
	OutcomeNotFound:     {code: "SYS-ERR0001", message: "対象情報が見つかりません。"},
	OutcomeInvalidInput: {code: "SYS-ERR0002", message: "入力値が不正です。"},
	OutcomeFound:        {code: "APP-MSG0000", message: ""},
}

// Code returns the status code string, or "" for an unknown outcome.
func (o Outcome) Code() string {
	return outcomes[o].code
}

// Message returns the human readable message, or "" for an unknown outcome.
func (o Outcome) Message() string {
	return outcomes[o].message
}

// Envelope wraps a payload with a status code and message. Data is a pointer
// so that failure envelopes serialize it as null.
type Envelope[T any] struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
	Data    *T     `json:"Data"`
}

func newEnvelope[T any](o Outcome, data *T) Envelope[T] {
	return Envelope[T]{Status: o.Code(), Message: o.Message(), Data: data}
}

func Found[T any](data T) Envelope[T] {
	return newEnvelope(OutcomeFound, &data)
}

// NotFound builds a not-found envelope. Request parameters, if given, are
// appended to the message for diagnostics.
func NotFound[T any](params ...string) Envelope[T] {
	env := newEnvelope[T](OutcomeNotFound, nil)
	if len(params) > 0 {
		env.Message += " [" + strings.Join(params, ", ") + "]"
	}
	return env
}

func InvalidInput[T any]() Envelope[T] {
	return newEnvelope[T](OutcomeInvalidInput, nil)
}

// SystemError is reserved for the fault barrier; endpoints never build it.
func SystemError() Envelope[any] {
	return newEnvelope[any](OutcomeSystemError, nil)
}

// WriteEnvelope writes env with HTTP 200. Failure envelopes are still
// successful HTTP responses.
func WriteEnvelope[T any](w http.ResponseWriter, env Envelope[T]) {
	JSON(w, http.StatusOK, env)
}
