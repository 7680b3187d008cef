package app

import (
	"errors"
	"fmt"
	"strings"
)

// Status messages shown in place of the chart and table.
const (
	MsgLoading    = "Cargando Excel local…"
	MsgLoadFailed = "No fue posible leer el Excel."
	MsgEmpty      = "El Excel está vacío."
)

// ErrEmptyDataset indicates the sheet has no data rows.
var ErrEmptyDataset = errors.New("dataset is empty")

// ErrAlreadyLoaded is returned by a second Load or Init on one Controller.
var ErrAlreadyLoaded = errors.New("dataset already loaded")

var errNotLoaded = errors.New("dataset not loaded yet")

// LoadError indicates the source could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// UnresolvedFieldError indicates a required logical field matched no header.
type UnresolvedFieldError struct {
	Field    string
	Patterns []string
}

func (e *UnresolvedFieldError) Error() string {
	return fmt.Sprintf("no column matches field %q (patterns: %s)", e.Field, strings.Join(e.Patterns, ", "))
}

// StatusMessage maps a load-time error to the message shown to users.
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, errNotLoaded) {
		return MsgLoading
	}
	if errors.Is(err, ErrEmptyDataset) {
		return MsgEmpty
	}
	var uf *UnresolvedFieldError
	if errors.As(err, &uf) {
		return fmt.Sprintf("No se encontró la columna ‘%s’ en el Excel.", uf.Field)
	}
	return MsgLoadFailed
}
