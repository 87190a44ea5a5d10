package js

import (
	"errors"
	"slices"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"es5", ES5, false},
		{"ES6", ES6, false},
		{" es2015 ", ES6, false},
		{"es2020", DefaultVersion, true},
		{"", DefaultVersion, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("error %v is not ErrInvalidVersion", err)
			}

			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestVersion_Text(t *testing.T) {
	for v := range Versions() {
		text, err := v.MarshalText()
		if err != nil {
			t.Fatalf("%s: MarshalText error: %v", v, err)
		}

		var got Version
		if err := got.UnmarshalText(text); err != nil || got != v {
			t.Errorf("UnmarshalText(%q) = %s, %v; want %s", text, got, err, v)
		}
	}

	if _, err := Version(9).MarshalText(); err == nil {
		t.Error("MarshalText accepted an unknown version")
	}

	if got := slices.Collect(Versions()); !slices.Equal(got, []Version{ES5, ES6}) {
		t.Errorf("Versions() = %v", got)
	}

	if got := Version(9).String(); got != "Version(9)" {
		t.Errorf("String() = %q", got)
	}
}
