package document

// CNPJLength is the number of digits in a Brazilian CNPJ.
const CNPJLength = 14

// ValidateCNPJ checks a Brazilian legal-entity registry number using the
// two mod-11 check digits at positions 13 and 14.
func ValidateCNPJ(raw string) bool {
	digits := OnlyDigits(raw)
	if len(digits) != CNPJLength || isRepeatedDigit(digits) {
		return false
	}

	d := digitValues(digits)

	if cnpjCheckDigit(d[:12], 5) != d[12] {
		return false
	}
	return cnpjCheckDigit(d[:13], 6) == d[13]
}

// cnpjCheckDigit runs the descending weight from startWeight, wrapping back
// to 9 once it drops below 2. A remainder below 2 maps to 0, otherwise 11-r.
func cnpjCheckDigit(d []int, startWeight int) int {
	sum := 0
	weight := startWeight
	for _, v := range d {
		sum += v * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
