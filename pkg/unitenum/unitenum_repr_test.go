package unitenum

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnderlyingType(t *testing.T) {
	tcs := []struct {
		in       string
		expected UnderlyingType
		err      bool
	}{
		{in: "u8", expected: U8},
		{in: "I16", expected: I16},
		{in: " uint32 ", expected: U32},
		{in: "int64", expected: I64},
		{in: "u128", expected: U128},
		{in: "i128", expected: I128},
		{in: "usize", err: true},
		{in: "", err: true},
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("tc %d", i), func(t *testing.T) {
			ut, err := ParseUnderlyingType(tc.in)
			if (err != nil) != tc.err {
				t.Errorf("unexpected err: %v, expected %v", err, tc.err)
			}
			assert.Equal(t, tc.expected, ut)
		})
	}
}

func TestUnderlyingTypeRange(t *testing.T) {
	tcs := []struct {
		ut       UnderlyingType
		min, max string
		goType   string
	}{
		{ut: I8, min: "-128", max: "127", goType: "int8"},
		{ut: U8, min: "0", max: "255", goType: "uint8"},
		{ut: I16, min: "-32768", max: "32767", goType: "int16"},
		{ut: U16, min: "0", max: "65535", goType: "uint16"},
		{ut: I32, min: "-2147483648", max: "2147483647", goType: "int32"},
		{ut: U32, min: "0", max: "4294967295", goType: "uint32"},
		{ut: I64, min: "-9223372036854775808", max: "9223372036854775807", goType: "int64"},
		{ut: U64, min: "0", max: "18446744073709551615", goType: "uint64"},
		{ut: I128, min: "-170141183460469231731687303715884105728", max: "170141183460469231731687303715884105727"},
		{ut: U128, min: "0", max: "340282366920938463463374607431768211455"},
	}
	for _, tc := range tcs {
		t.Run(tc.ut.String(), func(t *testing.T) {
			assert.Equal(t, tc.min, tc.ut.Min().String())
			assert.Equal(t, tc.max, tc.ut.Max().String())
			assert.True(t, tc.ut.Contains(tc.ut.Min()))
			assert.True(t, tc.ut.Contains(tc.ut.Max()))
			assert.False(t, tc.ut.Contains(new(big.Int).Add(tc.ut.Max(), big.NewInt(1))))
			assert.False(t, tc.ut.Contains(new(big.Int).Sub(tc.ut.Min(), big.NewInt(1))))

			goType, err := tc.ut.GoType()
			if tc.goType == "" {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.goType, goType)
			}
		})
	}
	assert.False(t, Unspecified.Contains(big.NewInt(0)))
	assert.Equal(t, I32, DefaultUnderlyingType)
}

func TestParseTag(t *testing.T) {
	tcs := []struct {
		in       string
		expected int64
		err      bool
	}{
		{in: "10", expected: 10},
		{in: "-3", expected: -3},
		{in: "+7", expected: 7},
		{in: "0x1F", expected: 31},
		{in: "0b101", expected: 5},
		{in: "0o17", expected: 15},
		{in: "1_000", expected: 1000},
		{in: "1.5", err: true},
		{in: "", err: true},
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("tc %d", i), func(t *testing.T) {
			v, err := parseTag(tc.in)
			if (err != nil) != tc.err {
				t.Fatalf("unexpected err: %v, expected %v", err, tc.err)
			}
			if err == nil {
				assert.Equal(t, tc.expected, v.Int64())
			}
		})
	}
}
