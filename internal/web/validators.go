package web

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	requiredTag  = "required"
	requiredText = "{0} is required"
	notBlankTag  = "notblank"
)

// FieldError — ошибка конкретного поля формы.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if len(e.Fields) > 0 {
		return e.Fields[0].Field + ": " + e.Fields[0].Error
	}
	return "validation failed"
}

// Map — поле -> первое сообщение по нему.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Error
		}
	}
	return out
}

// Number — числовое поле формы. Принимает JSON-число или строку,
// чтобы нечисловой ввод давал понятную ошибку поля, а не 400 от биндинга.
type Number struct {
	Raw string
	Set bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	*n = Number{Raw: s, Set: s != ""}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	if _, ok := n.Float(); ok {
		return []byte(n.Raw), nil
	}
	return []byte(strconv.Quote(n.Raw)), nil
}

func (n Number) Float() (float64, bool) {
	if !n.Set {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.Raw, 64)
	return f, err == nil
}

// Invalid — значение задано, но не число.
func (n Number) Invalid() bool {
	_, ok := n.Float()
	return n.Set && !ok
}

func Num(f float64) Number {
	return Number{Raw: strconv.FormatFloat(f, 'f', -1, 64), Set: true}
}

// validators собирает валидатор с английскими сообщениями.
type validators struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newValidators() *validators {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Number проверяется как float64; пустое и нечисловое значение — как отсутствующее.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if f, ok := v.Interface().(Number).Float(); ok {
			return f
		}
		return nil
	}, Number{})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	RegisterCustomTranslation(validate, translator, notBlankTag, requiredText)
	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)

	return &validators{validate: validate, translator: translator}
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// messages — тексты ошибок формы по ключу "поле.тег" или "поле".
type messages map[string]string

func (m messages) lookup(field, tag string) (string, bool) {
	if s, ok := m[field+"."+tag]; ok {
		return s, true
	}
	s, ok := m[field]
	return s, ok
}

// check прогоняет теги валидатора и добавляет ошибки к уже найденным
// (например, «не число»). Первая ошибка поля побеждает.
func (v *validators) check(form any, msgs messages, pre ...FieldError) error {
	errs := append([]FieldError(nil), pre...)
	seen := make(map[string]bool, len(errs))
	for _, e := range errs {
		seen[e.Field] = true
	}
	if err := v.validate.Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			if seen[fe.Field()] {
				continue
			}
			seen[fe.Field()] = true
			text, ok := msgs.lookup(fe.Field(), fe.Tag())
			if !ok {
				text = fe.Translate(v.translator)
			}
			errs = append(errs, FieldError{Field: fe.Field(), Error: text})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
