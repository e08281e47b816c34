package host

import "strings"

// naturalLess compares names so that digit runs compare by numeric value:
// "frame2" sorts before "frame10". Letters compare case-insensitively.
// Equal numbers with more leading zeros sort after the shorter spelling.
func naturalLess(a, b string) bool {
	ai, bi, la, lb := 0, 0, len(a), len(b)
	for ai < la && bi < lb {
		ca, cb := a[ai], b[bi]

		if isDigit(ca) && isDigit(cb) {
			startA, startB := ai, bi
			for ai < la && isDigit(a[ai]) {
				ai++
			}
			for bi < lb && isDigit(b[bi]) {
				bi++
			}

			numA := strings.TrimLeft(a[startA:ai], "0")
			numB := strings.TrimLeft(b[startB:bi], "0")
			if len(numA) != len(numB) {
				return len(numA) < len(numB)
			}
			if numA != numB {
				return numA < numB
			}
			if lenA, lenB := ai-startA, bi-startB; lenA != lenB {
				return lenA < lenB
			}
			continue
		}

		if xa, xb := lowerByte(ca), lowerByte(cb); xa != xb {
			return xa < xb
		}
		ai++
		bi++
	}
	return la-ai < lb-bi
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
