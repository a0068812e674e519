package registration

import (
	"regexp"

	"github.com/rivo/uniseg"
)

// Rule is one predicate over a field value plus the message reported when
// the predicate fails. all carries the complete record so cross-field rules
// see live values.
type Rule struct {
	Message MessageKey
	Check   func(value string, all Values) bool
}

// FieldRules is the ordered rule list for one field. Rules are evaluated in
// order and the first failure is reported.
type FieldRules struct {
	Field Field
	Rules []Rule
}

var (
	// ASCII classes spelled out: under (?i) RE2 folds [A-Z] onto U+017F and
	// U+212A as well.
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)

	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`\d`)
)

// RuleTable is the registration form's declarative rule set, in field
// display order.
var RuleTable = []FieldRules{
	{Field: FieldName, Rules: []Rule{
		Required(MsgNameRequired),
		MinChars(2, MsgNameTooShort),
	}},
	{Field: FieldEmail, Rules: []Rule{
		Required(MsgEmailRequired),
		Matches(emailPattern, MsgEmailInvalid),
	}},
	{Field: FieldPhone, Rules: []Rule{
		Required(MsgPhoneRequired),
		Matches(phonePattern, MsgPhoneFormat),
	}},
	{Field: FieldPassword, Rules: []Rule{
		Required(MsgPasswordRequired),
		MinChars(6, MsgPasswordTooShort),
		ContainsAll(MsgPasswordComplexity, lowerPattern, upperPattern, digitPattern),
	}},
	{Field: FieldConfirmPassword, Rules: []Rule{
		Required(MsgConfirmRequired),
		EqualsField(FieldPassword, MsgConfirmMismatch),
	}},
}

// RulesFor returns the rules for f, or nil.
func RulesFor(f Field) []Rule {
	for _, fr := range RuleTable {
		if fr.Field == f {
			return fr.Rules
		}
	}
	return nil
}

// Required fails on the empty string.
func Required(msg MessageKey) Rule {
	return Rule{Message: msg, Check: func(v string, _ Values) bool { return v != "" }}
}

// MinChars fails when v has fewer than n user-perceived characters
// (grapheme clusters). This is stricter than counting UTF-16 code units: a
// lone emoji or a decomposed "é" is one character here.
func MinChars(n int, msg MessageKey) Rule {
	return Rule{Message: msg, Check: func(v string, _ Values) bool {
		return uniseg.GraphemeClusterCount(v) >= n
	}}
}

// Matches fails when v does not match re.
func Matches(re *regexp.Regexp, msg MessageKey) Rule {
	return Rule{Message: msg, Check: func(v string, _ Values) bool { return re.MatchString(v) }}
}

// ContainsAll fails unless every pattern matches somewhere in v. Order and
// extra characters are irrelevant.
func ContainsAll(msg MessageKey, patterns ...*regexp.Regexp) Rule {
	return Rule{Message: msg, Check: func(v string, _ Values) bool {
		for _, re := range patterns {
			if !re.MatchString(v) {
				return false
			}
		}
		return true
	}}
}

// EqualsField fails unless v equals the current value of other exactly.
func EqualsField(other Field, msg MessageKey) Rule {
	return Rule{Message: msg, Check: func(v string, all Values) bool { return v == all.Get(other) }}
}
