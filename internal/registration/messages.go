package registration

import (
	"errors"
	"fmt"
	"sort"
)

// MessageKey names a user-visible string in a Catalog.
type MessageKey string

// Validation messages.
const (
	MsgNameRequired        MessageKey = "name.required"
	MsgNameTooShort        MessageKey = "name.min_length"
	MsgEmailRequired       MessageKey = "email.required"
	MsgEmailInvalid        MessageKey = "email.pattern"
	MsgPhoneRequired       MessageKey = "phone.required"
	MsgPhoneFormat         MessageKey = "phone.pattern"
	MsgPasswordRequired    MessageKey = "password.required"
	MsgPasswordTooShort    MessageKey = "password.min_length"
	MsgPasswordComplexity  MessageKey = "password.pattern"
	MsgConfirmRequired     MessageKey = "confirmPassword.required"
	MsgConfirmMismatch     MessageKey = "confirmPassword.match"
	MsgSubmissionFailed    MessageKey = "form.submit_failed"
	MsgFormTitle           MessageKey = "form.title"
	MsgFormDescription     MessageKey = "form.description"
	MsgSubmitLabel         MessageKey = "form.submit"
	MsgRequiredHint        MessageKey = "form.required_hint"
	MsgSuccessTitle        MessageKey = "success.title"
	MsgSuccessBody         MessageKey = "success.body"
	MsgLabelName           MessageKey = "label.name"
	MsgLabelEmail          MessageKey = "label.email"
	MsgLabelPhone          MessageKey = "label.phone"
	MsgLabelPassword       MessageKey = "label.password"
	MsgLabelConfirm        MessageKey = "label.confirmPassword"
	MsgPlaceholderName     MessageKey = "placeholder.name"
	MsgPlaceholderEmail    MessageKey = "placeholder.email"
	MsgPlaceholderPhone    MessageKey = "placeholder.phone"
	MsgPlaceholderPassword MessageKey = "placeholder.password"
	MsgPlaceholderConfirm  MessageKey = "placeholder.confirmPassword"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// ErrUnknownLocale is returned for a locale with no catalog.
var ErrUnknownLocale = errors.New("unknown locale")

// Catalog maps message keys to text for one locale.
type Catalog map[MessageKey]string

// Text returns the string for key, falling back to the default locale and
// finally to the key itself.
func (c Catalog) Text(key MessageKey) string {
	if s, ok := c[key]; ok {
		return s
	}
	if s, ok := catalogs[DefaultLocale][key]; ok {
		return s
	}
	return string(key)
}

// Label returns the display label for f.
func (c Catalog) Label(f Field) string {
	return c.Text(labelKeys[f])
}

// Placeholder returns the input placeholder for f.
func (c Catalog) Placeholder(f Field) string {
	return c.Text(placeholderKeys[f])
}

var labelKeys = map[Field]MessageKey{
	FieldName:            MsgLabelName,
	FieldEmail:           MsgLabelEmail,
	FieldPhone:           MsgLabelPhone,
	FieldPassword:        MsgLabelPassword,
	FieldConfirmPassword: MsgLabelConfirm,
}

var placeholderKeys = map[Field]MessageKey{
	FieldName:            MsgPlaceholderName,
	FieldEmail:           MsgPlaceholderEmail,
	FieldPhone:           MsgPlaceholderPhone,
	FieldPassword:        MsgPlaceholderPassword,
	FieldConfirmPassword: MsgPlaceholderConfirm,
}

var catalogs = map[string]Catalog{
	"en": {
		MsgNameRequired:        "Name is required",
		MsgNameTooShort:        "Name must be at least 2 characters",
		MsgEmailRequired:       "Email is required",
		MsgEmailInvalid:        "Invalid email address",
		MsgPhoneRequired:       "Phone is required",
		MsgPhoneFormat:         "Phone must match (99) 99999-9999",
		MsgPasswordRequired:    "Password is required",
		MsgPasswordTooShort:    "Password must be at least 6 characters",
		MsgPasswordComplexity:  "Password must contain a lowercase letter, an uppercase letter and a number",
		MsgConfirmRequired:     "Password confirmation is required",
		MsgConfirmMismatch:     "Passwords do not match",
		MsgSubmissionFailed:    "Registration could not be completed",
		MsgFormTitle:           "Sign Up",
		MsgFormDescription:     "Fill in the fields below to create your account",
		MsgSubmitLabel:         "Sign up",
		MsgRequiredHint:        "required",
		MsgSuccessTitle:        "Registration complete!",
		MsgSuccessBody:         "Your account was created successfully. Welcome!",
		MsgLabelName:           "Name",
		MsgLabelEmail:          "Email",
		MsgLabelPhone:          "Phone",
		MsgLabelPassword:       "Password",
		MsgLabelConfirm:        "Confirm Password",
		MsgPlaceholderName:     "Enter your full name",
		MsgPlaceholderEmail:    "Enter your email",
		MsgPlaceholderPhone:    "(99) 99999-9999",
		MsgPlaceholderPassword: "Enter your password",
		MsgPlaceholderConfirm:  "Confirm your password",
	},
	"pt-BR": {
		MsgNameRequired:        "Nome é obrigatório",
		MsgNameTooShort:        "Nome deve ter pelo menos 2 caracteres",
		MsgEmailRequired:       "E-mail é obrigatório",
		MsgEmailInvalid:        "E-mail inválido",
		MsgPhoneRequired:       "Telefone é obrigatório",
		MsgPhoneFormat:         "Telefone deve estar no formato (99) 99999-9999",
		MsgPasswordRequired:    "Senha é obrigatória",
		MsgPasswordTooShort:    "Senha deve ter pelo menos 6 caracteres",
		MsgPasswordComplexity:  "Senha deve conter pelo menos uma letra minúscula, uma maiúscula e um número",
		MsgConfirmRequired:     "Confirmação de senha é obrigatória",
		MsgConfirmMismatch:     "As senhas não coincidem",
		MsgSubmissionFailed:    "Não foi possível concluir o cadastro",
		MsgFormTitle:           "Cadastro de Usuário",
		MsgFormDescription:     "Preencha os dados abaixo para criar sua conta",
		MsgSubmitLabel:         "Cadastrar",
		MsgRequiredHint:        "obrigatório",
		MsgSuccessTitle:        "Cadastro Realizado!",
		MsgSuccessBody:         "Seu cadastro foi realizado com sucesso. Bem-vindo!",
		MsgLabelName:           "Nome",
		MsgLabelEmail:          "E-mail",
		MsgLabelPhone:          "Telefone",
		MsgLabelPassword:       "Senha",
		MsgLabelConfirm:        "Confirmar Senha",
		MsgPlaceholderName:     "Digite seu nome completo",
		MsgPlaceholderEmail:    "Digite seu e-mail",
		MsgPlaceholderPhone:    "(99) 99999-9999",
		MsgPlaceholderPassword: "Digite sua senha",
		MsgPlaceholderConfirm:  "Confirme sua senha",
	},
}

// CatalogFor returns the catalog for locale. An empty locale selects
// DefaultLocale.
func CatalogFor(locale string) (Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	c, ok := catalogs[locale]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownLocale, locale, Locales())
	}
	return c, nil
}

// DefaultCatalog returns the catalog for DefaultLocale.
func DefaultCatalog() Catalog {
	return catalogs[DefaultLocale]
}

// Locales lists the available locales, sorted.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for k := range catalogs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
