package brdoc

import "testing"

func TestOnlyDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01310-100", "01310100"},
		{"(11) 98888-7777", "11988887777"},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := OnlyDigits(tc.in); got != tc.want {
			t.Fatalf("OnlyDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsCPF(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid plain", "11144477735", true},
		{"valid formatted", "111.444.777-35", true},
		{"repeated digits", "00000000000", false},
		{"repeated nines", "99999999999", false},
		{"check digit mismatch", "12345678900", false},
		{"too short", "1114447773", false},
		{"too long", "111444777351", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCPF(tc.value); got != tc.want {
				t.Fatalf("IsCPF(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	valid := []string{"ana@example.com", "a.b+c@sub.domain.com.br"}
	for _, v := range valid {
		if !IsEmail(v) {
			t.Fatalf("expected %q to be a valid email", v)
		}
	}
	invalid := []string{"", "ana", "ana@", "@example.com", "ana@example", "a b@example.com", "a@@example.com"}
	for _, v := range invalid {
		if IsEmail(v) {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestIsPhone(t *testing.T) {
	if !IsPhone("(11) 4002-8922") {
		t.Fatalf("expected landline with area code to be valid")
	}
	if !IsPhone("11988887777") {
		t.Fatalf("expected mobile to be valid")
	}
	if IsPhone("4002-8922") {
		t.Fatalf("expected number without area code to be rejected")
	}
}

func TestIsCEP(t *testing.T) {
	if !IsCEP("01310-100") {
		t.Fatalf("expected formatted CEP to be valid")
	}
	if IsCEP("0131010") {
		t.Fatalf("expected seven digits to be rejected")
	}
	if IsCEP("013101000") {
		t.Fatalf("expected nine digits to be rejected")
	}
}

func TestIsUF(t *testing.T) {
	if !IsUF("SP") || !IsUF("rj") {
		t.Fatalf("expected two-letter codes to be valid")
	}
	if IsUF("S") || IsUF("SPO") || IsUF("S1") {
		t.Fatalf("expected malformed UF codes to be rejected")
	}
}
