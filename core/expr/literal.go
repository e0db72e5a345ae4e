/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import "math"

// maxFraction is the number of significant fraction digits, as a power of
// ten, past which further digits cannot change a float64.
const maxFraction = 1e17

// parseLiteral converts a number token to its value. The integer and
// fraction parts are accumulated separately in float64 and combined once.
func parseLiteral(tok Token) (float64, error) {
	s := tok.Value
	sign := 1.0
	if len(s) > 0 && s[0] == '-' {
		sign = -1
		s = s[1:]
	}

	var integer, fraction float64
	divisor := 1.0
	inFraction := false
	digits := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case isDigit(ch):
			digits++
			d := float64(ch - '0')
			if inFraction {
				if fraction < maxFraction {
					fraction = fraction*10 + d
					divisor *= 10
				}
			} else {
				integer = integer*10 + d
			}
		case ch == '.':
			if inFraction {
				return 0, newError(ErrMalformedLiteral, tok, "second decimal point in %q", tok.Value)
			}
			inFraction = true
		default:
			return 0, newError(ErrMalformedLiteral, tok, "invalid character %q in %q", ch, tok.Value)
		}
	}
	if digits == 0 {
		return 0, newError(ErrMalformedLiteral, tok, "no digits in %q", tok.Value)
	}
	if math.IsInf(integer, 0) {
		return 0, newError(ErrOverflow, tok, "literal %q is out of range", tok.Value)
	}
	return sign * (integer + fraction/divisor), nil
}
