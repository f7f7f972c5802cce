package document

// CPFLength is the number of digits in a Brazilian CPF.
const CPFLength = 11

// ValidateCPF checks a Brazilian individual taxpayer number. Formatting
// characters are ignored; anything that does not reduce to 11 digits with
// two matching check digits is rejected.
func ValidateCPF(raw string) bool {
	digits := OnlyDigits(raw)
	if len(digits) != CPFLength || isRepeatedDigit(digits) {
		return false
	}

	d := digitValues(digits)

	if cpfCheckDigit(d[:9], 10) != d[9] {
		return false
	}
	return cpfCheckDigit(d[:10], 11) == d[10]
}

// cpfCheckDigit weights the digits from firstWeight down by one each
// position. Remainders of 10 and 11 collapse to 0.
func cpfCheckDigit(d []int, firstWeight int) int {
	sum := 0
	for i, v := range d {
		sum += v * (firstWeight - i)
	}

	remainder := (sum * 10) % 11
	if remainder == 10 || remainder == 11 {
		remainder = 0
	}
	return remainder
}
