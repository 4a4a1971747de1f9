package riot

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: la cuenta no existe, la partida no existe o el jugador no aparece en ella.
	ErrNotFound = errors.New("no encontrado")
	// ErrMalformedInput se devuelve antes de cualquier request cuando el Riot ID no tiene la forma Nombre#tag.
	ErrMalformedInput = errors.New("formato de Riot ID inválido, usa Nombre#tag")
	// ErrTransient agrupa fallos de red o del servidor que no se reintentan.
	ErrTransient = errors.New("error transitorio de la API de Riot")
	// ErrUnexpected agrupa cualquier otra anomalía.
	ErrUnexpected = errors.New("error inesperado de la API de Riot")
	// ErrRateLimited es la señal interna de un 429; el cliente la consume reintentando.
	ErrRateLimited = errors.New("rate limited (429)")
)

// TransientError envuelve un fallo de transporte o un 5xx.
type TransientError struct {
	Op    string
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransientError) Unwrap() []error { return []error{ErrTransient, e.Cause} }

// UnexpectedError envuelve un status inesperado o un body que no se pudo decodificar.
type UnexpectedError struct {
	Op     string
	Status int
	Cause  error
}

func (e *UnexpectedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: API retornó status %d: %v", e.Op, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *UnexpectedError) Unwrap() []error { return []error{ErrUnexpected, e.Cause} }
