package httpclient

import "errors"

// Kind clasifica la falla; el mensaje para el usuario va siempre en Message.
type Kind string

const (
	KindNetwork Kind = "network" // el request no llegó o se cortó
	KindStatus  Kind = "status"  // respuesta no-2xx
	KindParse   Kind = "parse"   // 2xx pero el body no es el JSON esperado
)

// Error es el único error que devuelve Client.
type Error struct {
	Kind       Kind
	HTTPStatus int    // 0 en fallas de red
	Message    string // legible, nunca vacío
	Payload    any    // JSON parseado o texto crudo
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extrae *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf devuelve HTTPStatus o 0 si err no viene del cliente.
func StatusOf(err error) int {
	if e, ok := AsError(err); ok {
		return e.HTTPStatus
	}
	return 0
}

// ProxyStatus traduce un error del backend al status que ve el navegador:
// 4xx pasa tal cual; 5xx, red y parseo => 502.
func ProxyStatus(err error) int {
	status := StatusOf(err)
	if status >= 400 && status < 500 {
		return status
	}
	return 502
}
