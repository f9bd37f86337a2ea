package client

import "errors"

// ErrNetwork is returned when the request never produced a usable HTTP
// response (transport failure). The message is shown to the user as-is.
var ErrNetwork = errors.New("Error de red")

// unknownErrorMessage is used when a non-2xx body carries no message field.
const unknownErrorMessage = "Error desconocido"

// APIError is a backend-reported domain error. Its message is shown to the
// user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrAcceptBlocked is the client-side pre-flight refusal before accepting a
// transfer that references inactive or unavailable items. No network call
// is made when it fires.
var ErrAcceptBlocked = errors.New("No es posible aceptar el traslado: contiene ítems inactivos o sin disponibilidad")
