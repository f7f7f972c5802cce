package document

// DocumentType identifies which registry a cleaned document belongs to.
type DocumentType int

const (
	Unknown DocumentType = iota
	PAN
	CPF
	SouthAfricanID
	CNPJ
)

func (t DocumentType) String() string {
	switch t {
	case PAN:
		return "PAN"
	case CPF:
		return "CPF"
	case SouthAfricanID:
		return "South Africa National ID"
	case CNPJ:
		return "CNPJ"
	default:
		return "Unknown"
	}
}

// Validator is implemented by the checks that live outside this package's
// own checksum code, such as PAN and South African ID validation.
type Validator interface {
	Validate(cleaned string) bool
}

// ValidatorFunc adapts a plain function to a Validator.
type ValidatorFunc func(string) bool

func (f ValidatorFunc) Validate(cleaned string) bool {
	return f(cleaned)
}

type ValidationResult struct {
	Valid        bool
	DocumentType DocumentType
}

// Classify picks the document type from the length of a cleaned document.
// No other heuristics are applied: every 10 character string is a PAN
// candidate and every 13 character string a South African ID candidate.
func Classify(cleaned string) DocumentType {
	switch len(cleaned) {
	case PanLength:
		return PAN
	case CPFLength:
		return CPF
	case SouthAfricanIDLength:
		return SouthAfricanID
	case CNPJLength:
		return CNPJ
	default:
		return Unknown
	}
}

// Dispatcher routes a raw document to the validator for its type.
type Dispatcher struct {
	pan            Validator
	southAfricanID Validator
}

func NewDispatcher(pan Validator, southAfricanID Validator) *Dispatcher {
	return &Dispatcher{pan: pan, southAfricanID: southAfricanID}
}

// NewDefaultDispatcher wires the built-in PAN and South African ID checkers.
func NewDefaultDispatcher() *Dispatcher {
	return NewDispatcher(PanChecker{}, SouthAfricanIDChecker{})
}

// Validate cleans raw, classifies it once and runs the matching validator.
func (d *Dispatcher) Validate(raw string) ValidationResult {
	return d.ValidateCleaned(CleanDocument(raw))
}

// ValidateCleaned is Validate for input that already went through CleanDocument.
func (d *Dispatcher) ValidateCleaned(cleaned string) ValidationResult {
	docType := Classify(cleaned)

	var valid bool
	switch docType {
	case PAN:
		valid = d.pan.Validate(cleaned)
	case CPF:
		valid = ValidateCPF(cleaned)
	case SouthAfricanID:
		valid = d.southAfricanID.Validate(cleaned)
	case CNPJ:
		valid = ValidateCNPJ(cleaned)
	default:
		valid = false
	}

	return ValidationResult{Valid: valid, DocumentType: docType}
}
