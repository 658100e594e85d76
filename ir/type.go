package ir

import "fmt"

// FragmentKind distinguishes fixed-arity fragments from repeated ones.
type FragmentKind int

const (
	RegularKind FragmentKind = iota
	ComprehensionKind
)

func (k FragmentKind) String() string {
	s, ok := map[FragmentKind]string{
		RegularKind:       "Regular",
		ComprehensionKind: "Comprehension",
	}[k]
	if ok {
		return s
	}
	return "<unknown fragment kind>"
}

func (k FragmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FragmentKind) UnmarshalText(d []byte) error {
	kk, ok := map[string]FragmentKind{
		"Regular":       RegularKind,
		"Comprehension": ComprehensionKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized fragment kind %q", d)
	}
	*k = kk
	return nil
}

type ChildKind int

const (
	FragmentChild ChildKind = iota
	ComponentIDChild
	StringChild
)

func (k ChildKind) String() string {
	s, ok := map[ChildKind]string{
		FragmentChild:    "Fragment",
		ComponentIDChild: "ComponentID",
		StringChild:      "String",
	}[k]
	if ok {
		return s
	}
	return "<unknown child kind>"
}

func (k ChildKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ChildKind) UnmarshalText(d []byte) error {
	kk, ok := map[string]ChildKind{
		"Fragment":    FragmentChild,
		"ComponentID": ComponentIDChild,
		"String":      StringChild,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized child kind %q", d)
	}
	*k = kk
	return nil
}

// StaticsKind tells whether statics are given inline or by reference.
// Statics refer to templates, ComponentStatics refer to other components.
type StaticsKind int

const (
	InlineStatics StaticsKind = iota
	TemplateRef
	ComponentRef
)

func (k StaticsKind) String() string {
	s, ok := map[StaticsKind]string{
		InlineStatics: "Inline",
		TemplateRef:   "TemplateRef",
		ComponentRef:  "ComponentRef",
	}[k]
	if ok {
		return s
	}
	return "<unknown statics kind>"
}

func (k StaticsKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
