package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeNext(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/animais", "/animais"},
		{"/animais?tab=mine", "/animais?tab=mine"},
		{"", DefaultNextAfterLogin},
		{"animais", DefaultNextAfterLogin},
		{"//evil.example/x", DefaultNextAfterLogin},
		{"/\\evil.example", DefaultNextAfterLogin},
		{"https://evil.example/", DefaultNextAfterLogin},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SafeNext(tc.in, DefaultNextAfterLogin), "next=%q", tc.in)
	}
}

func TestProfile_Normalize(t *testing.T) {
	p, err := Profile{HousingType: " casa ", Lifestyle: "ativo", HasChildren: -1, HoursPerWeek: 10}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "casa", p.HousingType)
	assert.Zero(t, p.HasChildren)

	_, err = Profile{HousingType: "casa"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidInput)
}
