package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"fmt"
	"net/url"
)

// SwitchPolicy decides what an empty switch set means.
type SwitchPolicy int

const (
	// SwitchesAsGiven returns the empty set unchanged.
	SwitchesAsGiven SwitchPolicy = iota
	// SwitchesRequireOne rejects a request that turns nothing on.
	SwitchesRequireOne
	// SwitchesAllOnNone turns every switch on when none is given.
	SwitchesAllOnNone
)

// Switches is the set of query flags that were turned on, in declaration
// order.
type Switches []string

// ParseSwitches reads boolean query flags. A flag is on when it is present
// with an empty value or with "1".
func ParseSwitches(params url.Values, names []string, policy SwitchPolicy) (Switches, error) {
	on := make(Switches, 0, len(names))
	for _, name := range names {
		values, ok := params[name]
		if !ok {
			continue
		}
		if v := firstValue(values); v == "" || v == "1" {
			on = append(on, name)
		}
	}

	if len(on) > 0 {
		return on, nil
	}
	switch policy {
	case SwitchesRequireOne:
		return nil, NewValidationError("detail", fmt.Sprintf("Need at least one active query parameter: %v", names))
	case SwitchesAllOnNone:
		return append(Switches(nil), names...), nil
	default:
		return on, nil
	}
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (s Switches) Has(name string) bool {
	for _, on := range s {
		if on == name {
			return true
		}
	}
	return false
}

var (
	programKindNames     = kindNames(domain.ProgramKinds)
	mediaKindNames       = kindNames(domain.MediaKinds)
	mediaVisibilityNames = kindNames(domain.MediaVisibilities)
)

func kindNames[K ~string](kinds []K) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

func kindsOf[K ~string](s Switches) []K {
	kinds := make([]K, len(s))
	for i, name := range s {
		kinds[i] = K(name)
	}
	return kinds
}

// ProgramKindParam selects exactly one program kind; default wins over
// custom when both are given.
func ProgramKindParam(params url.Values) (domain.ProgramKind, error) {
	s, err := ParseSwitches(params, programKindNames, SwitchesRequireOne)
	if err != nil {
		return "", err
	}
	return domain.ProgramKind(s[0]), nil
}

// ProgramKindsParam lists the requested program kinds, all when none given.
func ProgramKindsParam(params url.Values) ([]domain.ProgramKind, error) {
	s, err := ParseSwitches(params, programKindNames, SwitchesAllOnNone)
	if err != nil {
		return nil, err
	}
	return kindsOf[domain.ProgramKind](s), nil
}

// MediaKindParam selects exactly one media kind; photo wins over video.
func MediaKindParam(params url.Values) (domain.MediaKind, error) {
	s, err := ParseSwitches(params, mediaKindNames, SwitchesRequireOne)
	if err != nil {
		return "", err
	}
	return domain.MediaKind(s[0]), nil
}

func MediaKindsParam(params url.Values) ([]domain.MediaKind, error) {
	s, err := ParseSwitches(params, mediaKindNames, SwitchesAllOnNone)
	if err != nil {
		return nil, err
	}
	return kindsOf[domain.MediaKind](s), nil
}

func MediaVisibilitiesParam(params url.Values) ([]domain.MediaVisibility, error) {
	s, err := ParseSwitches(params, mediaVisibilityNames, SwitchesAllOnNone)
	if err != nil {
		return nil, err
	}
	return kindsOf[domain.MediaVisibility](s), nil
}

// PublicParam reports whether the optional "public" flag is on.
func PublicParam(params url.Values) bool {
	s, _ := ParseSwitches(params, []string{string(domain.MediaPublic)}, SwitchesAsGiven)
	return s.Has(string(domain.MediaPublic))
}
