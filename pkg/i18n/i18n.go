// Package i18n looks up the storefront's display strings in English and
// Vietnamese.
//
// Package i18n 查找商店前端的英文和越南文显示文本。
package i18n

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Humphrey-He/mtstore/pkg/errors"
)

// Language is a display language code.
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"
)

// Languages lists the supported languages.
var Languages = []Language{English, Vietnamese}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Languages, l) {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownLanguage, s)
	}
	return l, nil
}

//go:embed data/translations.yaml
var defaultTable []byte

// Translator resolves keys to text. It is read-only after construction and
// safe for concurrent use.
//
// Translator 将键解析为文本。构造后只读，可并发使用。
type Translator struct {
	table map[Language]map[string]string
}

// Load decodes a translation table of the form {lang: {key: text}}.
//
// Parameters:
//   - r: Reader providing the YAML document
//
// Returns:
//   - *Translator: The translator
//   - error: An error if decoding fails or English is missing
func Load(r io.Reader) (*Translator, error) {
	var table map[Language]map[string]string
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to decode translations: %w", err)
	}
	if _, ok := table[English]; !ok {
		return nil, fmt.Errorf("translations: missing %q table", English)
	}
	return &Translator{table: table}, nil
}

// Default returns the built-in translator.
func Default() *Translator {
	t, err := Load(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded translations are invalid: %v", err))
	}
	return t
}

// Lookup returns the text for key in lang, falling back to English and then
// to the key itself. Each {name} placeholder is replaced by params[name].
func (t *Translator) Lookup(key string, lang Language, params map[string]any) string {
	text, ok := t.table[lang][key]
	if !ok || text == "" {
		text, ok = t.table[English][key]
	}
	if !ok || text == "" {
		text = key
	}
	for name, v := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(v))
	}
	return text
}

// Has reports whether key exists in lang without falling back.
func (t *Translator) Has(key string, lang Language) bool {
	_, ok := t.table[lang][key]
	return ok
}

// Keys returns the English keys in sorted order.
func (t *Translator) Keys() []string {
	keys := make([]string, 0, len(t.table[English]))
	for k := range t.table[English] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
