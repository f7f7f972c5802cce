package document

import "time"

// SouthAfricanIDLength is the number of digits in a South African national ID.
const SouthAfricanIDLength = 13

// SouthAfricanIDChecker validates a South African national identity number:
// YYMMDD date of birth, four sequence digits, a citizenship digit, a legacy
// race digit and a Luhn check digit.
type SouthAfricanIDChecker struct {
	// Now resolves the birth century. Defaults to time.Now.
	Now func() time.Time
}

func (c SouthAfricanIDChecker) Validate(cleaned string) bool {
	if len(cleaned) != SouthAfricanIDLength || OnlyDigits(cleaned) != cleaned {
		return false
	}

	d := digitValues(cleaned)

	if _, ok := c.dateOfBirth(d); !ok {
		return false
	}

	// 0 = citizen, 1 = permanent resident
	if d[10] != 0 && d[10] != 1 {
		return false
	}

	return luhnValid(d)
}

// dateOfBirth reads the YYMMDD prefix. The century is the most recent one
// that does not put the birth date in the future.
func (c SouthAfricanIDChecker) dateOfBirth(d []int) (time.Time, bool) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	today := now()

	yy := d[0]*10 + d[1]
	month := d[2]*10 + d[3]
	day := d[4]*10 + d[5]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	year := (today.Year()/100)*100 + yy
	dob := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if dob.After(today) {
		year -= 100
		dob = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	// time.Date normalises 31 April into 1 May, so compare the parts back.
	if dob.Month() != time.Month(month) || dob.Day() != day {
		return time.Time{}, false
	}
	return dob, true
}

func luhnValid(d []int) bool {
	sum := 0
	double := false
	for i := len(d) - 1; i >= 0; i-- {
		v := d[i]
		if double {
			v *= 2
			if v > 9 {
				v -= 9
			}
		}
		sum += v
		double = !double
	}
	return sum%10 == 0
}
