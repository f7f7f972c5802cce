package document

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PanLength is the number of characters in an Indian PAN.
const PanLength = 10

// The fourth character encodes the holder type: association of persons,
// body of individuals, company, firm, government, HUF, local authority,
// artificial juridical person, individual or trust.
var panPattern = regexp.MustCompile(`^[A-Z]{3}[ABCFGHJLPT][A-Z][0-9]{4}[A-Z]$`)

// PanChecker validates the structure of an Indian Permanent Account Number.
// Letters are matched case-insensitively.
type PanChecker struct{}

func (PanChecker) Validate(cleaned string) bool {
	if len(cleaned) != PanLength {
		return false
	}
	return panPattern.MatchString(cases.Upper(language.Und).String(cleaned))
}
