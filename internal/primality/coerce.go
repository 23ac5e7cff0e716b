package primality

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ToNumber converts a loosely typed value into a float64.
// Native numeric types (and bool, as 0 or 1) convert directly. Strings,
// byte slices, json.Number and fmt.Stringer values are parsed with
// strconv.ParseFloat after trimming whitespace. ok is false when the value
// cannot be interpreted as a number.
func ToNumber(v any) (f float64, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case *big.Int:
		if x == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	case json.Number:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	case []byte:
		return parseFloat(string(x))
	case fmt.Stringer:
		return parseFloat(x.String())
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// twoTo63 is the first float64 outside the int64 range. Every float64 at or
// above it is a multiple of 2^11, hence never prime.
const twoTo63 = 9223372036854775808.0

// IsPrimeValue is the loosely typed entry point of the predicate. Integer
// inputs are tested exactly; anything else goes through ToNumber and is
// rejected when unconvertible, NaN, infinite or non-integral. It never panics.
func IsPrimeValue(v any) bool {
	switch x := v.(type) {
	case int:
		return IsPrime(int64(x))
	case int64:
		return IsPrime(x)
	case int32:
		return IsPrime(int64(x))
	case uint:
		return isPrimeUint64(uint64(x))
	case uint64:
		return isPrimeUint64(x)
	case uint32:
		return isPrimeUint64(uint64(x))
	case *big.Int:
		if x == nil || x.Sign() <= 0 {
			return false
		}
		if x.IsUint64() {
			return isPrimeUint64(x.Uint64())
		}
		return x.ProbablyPrime(20)
	}

	f, ok := ToNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if f != math.Trunc(f) || f <= 1 || f >= twoTo63 {
		return false
	}
	return IsPrime(int64(f))
}
