package validator

import "strings"

// Rule annotation grammar delimiters. Names and parameters cannot contain them;
// there is no escaping.
const (
	RuleDelimiter  = " "
	ParamDelimiter = ":"
)

// RuleToken is one parsed rule item: a rule name and its optional parameter.
type RuleToken struct {
	Name     string
	Param    string
	HasParam bool
}

func (t RuleToken) String() string {
	if !t.HasParam {
		return t.Name
	}
	return t.Name + ParamDelimiter + t.Param
}

// ParseRuleItem splits a single rule item ("name" or "name:param") on the first
// parameter delimiter.
func ParseRuleItem(item string) RuleToken {
	name, param, found := strings.Cut(item, ParamDelimiter)
	return RuleToken{Name: name, Param: param, HasParam: found}
}

// ParseRules turns a rule annotation such as "required minLength:4" into tokens
// in declaration order. Blank annotations yield nil.
func ParseRules(raw string) []RuleToken {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	items := strings.Split(raw, RuleDelimiter)
	tokens := make([]RuleToken, 0, len(items))
	for _, item := range items {
		// Repeated delimiters leave empty items; they name no rule.
		if item == "" {
			continue
		}
		tokens = append(tokens, ParseRuleItem(item))
	}
	return tokens
}
