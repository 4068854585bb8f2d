package growth

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ParseGroup parses a growth-group specification such as "n^QQ" or
// "k^QQ * m^QQ" and returns the variable names of the group. Only
// rational-power monomial groups are supported.
func ParseGroup(spec string) ([]string, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, errors.New("empty growth group specification")
	}
	parts := strings.Split(spec, "*")
	seen := map[string]bool{}
	variables := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		name, power, found := strings.Cut(part, "^")
		if !found {
			return nil, errors.Errorf("invalid growth group factor %q: expected variable^QQ", part)
		}
		if power != "QQ" && power != "ZZ" {
			return nil, errors.Errorf("unsupported exponent group %q in %q (only QQ and ZZ)", power, part)
		}
		if !validVariableName(name) {
			return nil, errors.Errorf("invalid growth variable name %q", name)
		}
		if seen[name] {
			return nil, errors.Errorf("duplicate growth variable %q", name)
		}
		seen[name] = true
		variables = append(variables, name)
	}
	return variables, nil
}

func validVariableName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !(r == '_' || unicode.IsLetter(r)) {
			return false
		}
		if i > 0 && !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
