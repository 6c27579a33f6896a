// Package i18n resolves kiosk texts in customer language.
package i18n

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

const ContextKey = "run/i18n"

type Language string

const (
	LangDE Language = "de"
	LangEN Language = "en"

	DefaultLanguage = LangDE
)

var Languages = []Language{LangDE, LangEN}

func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case LangDE, LangEN:
		return l, nil
	}
	return "", errors.NotValidf("language=%q", s)
}

func (l Language) Toggle() Language {
	if l == LangDE {
		return LangEN
	}
	return LangDE
}

// Translator is language capability passed to every screen.
type Translator interface {
	Language() Language
	SetLanguage(Language) error
	T(key string) string
}

func WithTranslator(ctx context.Context, t Translator) context.Context {
	return context.WithValue(ctx, ContextKey, t)
}

// GetTranslator panics when no translator was provided, that is wiring bug.
func GetTranslator(ctx context.Context) Translator {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Errorf("context['%v'] is nil, translator must be provided", ContextKey))
	}
	if t, ok := v.(Translator); ok {
		return t
	}
	panic(fmt.Errorf("context['%v'] expected type i18n.Translator", ContextKey))
}

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog maps language to nested namespaces of texts.
type Catalog struct {
	m map[Language]map[string]interface{}
}

func LoadCatalog(b []byte) (*Catalog, error) {
	var raw map[string]map[string]interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errors.Annotate(err, "catalog yaml")
	}
	c := &Catalog{m: make(map[Language]map[string]interface{}, len(raw))}
	for k, v := range raw {
		lang, err := ParseLanguage(k)
		if err != nil {
			return nil, errors.Annotate(err, "catalog")
		}
		c.m[lang] = v
	}
	return c, nil
}

func MustDefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultCatalog)
	if err != nil {
		panic("code error embedded catalog: " + err.Error())
	}
	return c
}

// Lookup walks dotted key. Only non-empty string leaf is found.
func (c *Catalog) Lookup(lang Language, key string) (string, bool) {
	var node interface{} = c.m[lang]
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return "", false
		}
		if node, ok = m[part]; !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok && s != ""
}

// T returns key itself when translation is missing.
func (c *Catalog) T(lang Language, key string) string {
	if s, ok := c.Lookup(lang, key); ok {
		return s
	}
	return key
}

// Keys lists leaf keys of language, used to check catalog completeness.
func (c *Catalog) Keys(lang Language) []string {
	var out []string
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			full := k
			if prefix != "" {
				full = prefix + "." + k
			}
			if sub, ok := v.(map[string]interface{}); ok {
				walk(full, sub)
			} else {
				out = append(out, full)
			}
		}
	}
	walk("", c.m[lang])
	return out
}
