package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"j": JSONFormat, "json": JSONFormat, "y": YAMLFormat, "yaml": YAMLFormat} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: got %s want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":     JSONFormat,
		"a.yaml":     YAMLFormat,
		"dir/b.yml":  YAMLFormat,
		"payload":    JSONFormat,
		".yaml.json": JSONFormat,
	}
	for p, want := range tests {
		if got := FromPath(p); got != want {
			t.Errorf("%s: got %s want %s", p, got, want)
		}
	}
}
