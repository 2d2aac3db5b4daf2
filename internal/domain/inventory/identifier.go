package inventory

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/wasitemo/store-management-sub000/internal/domain"
)

// IdentifierKind nombra el campo por el que se identifica una unidad física.
type IdentifierKind string

const (
	KindIMEI1   IdentifierKind = "imei_1"
	KindIMEI2   IdentifierKind = "imei_2"
	KindSerial  IdentifierKind = "sn"
	KindBarcode IdentifierKind = "barcode"
)

// Identifiers son los identificadores que trae una línea de venta o de consulta.
type Identifiers struct {
	IMEI1        string
	IMEI2        string
	SerialNumber string
	Barcode      string
}

// Normalize quita espacios y aplica case-folding Unicode. Es la forma en que los
// identificadores se guardan al ingresar stock y se comparan al vender.
func Normalize(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	return cases.Fold().String(v)
}

// Normalized devuelve una copia con todos los campos normalizados.
func (ids Identifiers) Normalized() Identifiers {
	return Identifiers{
		IMEI1:        Normalize(ids.IMEI1),
		IMEI2:        Normalize(ids.IMEI2),
		SerialNumber: Normalize(ids.SerialNumber),
		Barcode:      Normalize(ids.Barcode),
	}
}

// IsEmpty indica si no se suministró ningún identificador.
func (ids Identifiers) IsEmpty() bool {
	return ids.IMEI1 == "" && ids.IMEI2 == "" && ids.SerialNumber == "" && ids.Barcode == ""
}

// Supplied es un identificador presente en la línea.
type Supplied struct {
	Kind  IdentifierKind
	Value string
}

// UnitIdentifiers devuelve los identificadores a nivel de unidad (IMEI-1, IMEI-2, SN)
// presentes, en ese orden. El código de barras es del producto y se trata aparte.
func (ids Identifiers) UnitIdentifiers() []Supplied {
	out := make([]Supplied, 0, 3)
	if ids.IMEI1 != "" {
		out = append(out, Supplied{Kind: KindIMEI1, Value: ids.IMEI1})
	}
	if ids.IMEI2 != "" {
		out = append(out, Supplied{Kind: KindIMEI2, Value: ids.IMEI2})
	}
	if ids.SerialNumber != "" {
		out = append(out, Supplied{Kind: KindSerial, Value: ids.SerialNumber})
	}
	return out
}

// OutcomeStatus es el resultado de buscar un identificador.
type OutcomeStatus int

const (
	OutcomeNotFound OutcomeStatus = iota
	OutcomeNotReady
	OutcomeReady
)

// Outcome registra qué pasó con un identificador. UnitID se llena cuando la unidad
// existe (lista o no).
type Outcome struct {
	Kind   IdentifierKind
	Value  string
	Status OutcomeStatus
	UnitID string
}

// Reconcile combina los resultados de los identificadores de una línea. Devuelve el
// único ID de unidad resuelto, o todos los problemas encontrados (no solo el primero).
func Reconcile(outcomes []Outcome) (string, []*domain.Error) {
	if len(outcomes) == 0 {
		return "", []*domain.Error{domain.ErrNoIdentifierSupplied}
	}

	var problems []*domain.Error
	var resolved string
	var first Outcome
	seen := false

	for _, o := range outcomes {
		switch o.Status {
		case OutcomeNotFound:
			problems = append(problems, domain.ErrUnitNotFound.WithDetail(fmt.Sprintf("%s %q", o.Kind, o.Value)))
		case OutcomeNotReady:
			problems = append(problems, domain.ErrUnitNotReady.WithDetail(fmt.Sprintf("%s %q", o.Kind, o.Value)))
		}
		if o.UnitID == "" {
			continue
		}
		if !seen {
			first, seen = o, true
			if o.Status == OutcomeReady {
				resolved = o.UnitID
			}
			continue
		}
		if o.UnitID != first.UnitID {
			problems = append(problems, domain.ErrInconsistentIdentifiers.WithDetail(
				fmt.Sprintf("%s %q y %s %q", first.Kind, first.Value, o.Kind, o.Value)))
		}
	}

	if len(problems) > 0 {
		return "", problems
	}
	return resolved, nil
}

// LineError agrupa los problemas de una línea de la orden. Line 0 indica una consulta
// suelta, sin número de línea.
type LineError struct {
	Line      int
	ProductID string
	Problems  []*domain.Error
}

func (e *LineError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Message
	}
	if e.Line == 0 {
		return fmt.Sprintf("producto %s: %s", e.ProductID, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("línea %d (producto %s): %s", e.Line, e.ProductID, strings.Join(msgs, "; "))
}

func (e *LineError) Unwrap() []error {
	out := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		out[i] = p
	}
	return out
}

// ErrorCode elige el código más representativo de la línea.
func (e *LineError) ErrorCode() string {
	return dominantCode(e.Problems)
}

// LineErrors son los errores de todas las líneas fallidas de una orden.
type LineErrors []*LineError

func (le LineErrors) Error() string {
	msgs := make([]string, len(le))
	for i, e := range le {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (le LineErrors) Unwrap() []error {
	out := make([]error, len(le))
	for i, e := range le {
		out[i] = e
	}
	return out
}

func (le LineErrors) ErrorCode() string {
	var all []*domain.Error
	for _, e := range le {
		all = append(all, e.Problems...)
	}
	return dominantCode(all)
}

// dominantCode: identificador ausente, luego inconsistencia, luego el primer problema.
func dominantCode(problems []*domain.Error) string {
	if len(problems) == 0 {
		return domain.CodeInternal
	}
	for _, code := range []string{domain.CodeNoIdentifier, domain.CodeInconsistentIdentifiers} {
		for _, p := range problems {
			if p.Code == code {
				return code
			}
		}
	}
	return problems[0].Code
}
