package rendertree

import "fmt"

// MergeErrorKind classifies diffs whose shape does not fit the current tree.
type MergeErrorKind int

const (
	// FragmentTypeMismatch: the diff variant does not apply to the variant
	// of the current fragment or component.
	FragmentTypeMismatch MergeErrorKind = iota
	// CreateComponentFromUpdate: a new component came as a sparse patch.
	CreateComponentFromUpdate
	// CreateChildFromUpdateFragment: a new child fragment came as a patch
	// instead of a full fragment.
	CreateChildFromUpdateFragment
	// AddChildToExisting: a sparse patch addressed a child index out of
	// bounds.
	AddChildToExisting
)

func (k MergeErrorKind) String() string {
	s, ok := map[MergeErrorKind]string{
		FragmentTypeMismatch:          "fragmentTypeMismatch",
		CreateComponentFromUpdate:     "createComponentFromUpdate",
		CreateChildFromUpdateFragment: "createChildFromUpdateFragment",
		AddChildToExisting:            "addChildToExisting",
	}[k]
	if ok {
		return s
	}
	return "<unknown merge error>"
}

func (k MergeErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MergeError is returned by Merge, wrapped in an ir.PathError locating the
// offending node. Compare with errors.Is against the Err* values, which
// match on Kind alone.
type MergeError struct {
	Kind   MergeErrorKind
	Detail string
}

var (
	ErrFragmentTypeMismatch          = &MergeError{Kind: FragmentTypeMismatch}
	ErrCreateComponentFromUpdate     = &MergeError{Kind: CreateComponentFromUpdate}
	ErrCreateChildFromUpdateFragment = &MergeError{Kind: CreateChildFromUpdateFragment}
	ErrAddChildToExisting            = &MergeError{Kind: AddChildToExisting}
)

func (e *MergeError) Error() string {
	if e.Detail == "" {
		return "merge error: " + e.Kind.String()
	}
	return "merge error: " + e.Kind.String() + ": " + e.Detail
}

func (e *MergeError) Is(target error) bool {
	t, ok := target.(*MergeError)
	return ok && t.Kind == e.Kind
}

func mergeErr(kind MergeErrorKind, format string, args ...any) error {
	return &MergeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
