package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"known valid", "52998224725", true},
		{"known valid formatted", "529.982.247-25", true},
		{"second known valid", "111.444.777-35", true},
		{"last digit perturbed", "52998224724", false},
		{"first check digit perturbed", "52998224735", false},
		{"repeated ones", "11111111111", false},
		{"repeated zeros", "000.000.000-00", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"letter reduces digit count", "5299822472A", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, ValidateCPF(tt.input))
		})
	}
}

func TestValidateCPF_RejectsEveryRepeatedDigit(t *testing.T) {
	for c := byte('0'); c <= '9'; c++ {
		input := string([]byte{c, c, c, c, c, c, c, c, c, c, c})
		require.False(t, ValidateCPF(input), input)
	}
}

func TestValidateCPF_Deterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		require.True(t, ValidateCPF("52998224725"))
		require.False(t, ValidateCPF("52998224724"))
	}
}

func TestCpfCheckDigit(t *testing.T) {
	t.Run("remainder 10 collapses to zero", func(t *testing.T) {
		// sum = 4*3 = 12, 120 mod 11 = 10
		require.Equal(t, 0, cpfCheckDigit([]int{0, 0, 0, 0, 0, 0, 0, 4, 0}, 10))
	})

	t.Run("first digit of known cpf", func(t *testing.T) {
		require.Equal(t, 2, cpfCheckDigit([]int{5, 2, 9, 9, 8, 2, 2, 4, 7}, 10))
	})

	t.Run("second digit of known cpf", func(t *testing.T) {
		require.Equal(t, 5, cpfCheckDigit([]int{5, 2, 9, 9, 8, 2, 2, 4, 7, 2}, 11))
	})
}
