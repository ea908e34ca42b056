package primitives

import "testing"

func TestUint128_AddSubRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Uint128
		wantSum  Uint128
		overflow bool
	}{
		{"zero+zero", Uint128{}, Uint128{}, Uint128{}, false},
		{"small", Uint128FromUint64(1), Uint128FromUint64(2), Uint128FromUint64(3), false},
		{"carry into hi", Uint128{Lo: ^uint64(0)}, Uint128FromUint64(1), Uint128{Hi: 1, Lo: 0}, false},
		{"max + 1 overflows", MaxUint128, Uint128FromUint64(1), Uint128{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sum, overflow := c.a.Add(c.b)
			if overflow != c.overflow {
				t.Fatalf("overflow = %v, want %v", overflow, c.overflow)
			}
			if !c.overflow && sum.Cmp(c.wantSum) != 0 {
				t.Fatalf("sum = %v, want %v", sum, c.wantSum)
			}
		})
	}
}

func TestUint128_Sub(t *testing.T) {
	diff, underflow := Uint128FromUint64(5).Sub(Uint128FromUint64(3))
	if underflow {
		t.Fatalf("unexpected underflow")
	}
	if diff.Cmp(Uint128FromUint64(2)) != 0 {
		t.Fatalf("diff = %v, want 2", diff)
	}

	_, underflow = Uint128FromUint64(1).Sub(Uint128FromUint64(2))
	if !underflow {
		t.Fatalf("expected underflow")
	}
}

func TestUint128_BytesRoundTrip(t *testing.T) {
	v := MaxUint128
	b := v.Bytes()
	got, err := Uint128FromBytes(b[:])
	if err != nil {
		t.Fatalf("Uint128FromBytes: %v", err)
	}
	if got.Cmp(v) != 0 {
		t.Fatalf("got %v, want %v", got, v)
	}
}

func TestUint128_JSONRoundTrip(t *testing.T) {
	v := Uint128{Hi: 1, Lo: 2}
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var got Uint128
	if err := got.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Cmp(v) != 0 {
		t.Fatalf("got %v, want %v", got, v)
	}
}

func TestUint128_String(t *testing.T) {
	if MaxUint128.String() != "340282366920938463463374607431768211455" {
		t.Fatalf("unexpected string: %s", MaxUint128.String())
	}
}
