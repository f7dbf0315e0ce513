// Package i18n loads gettext-style message catalogs keyed by text domain and
// locale from YAML files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var embedded embed.FS

// Translator resolves message ids for one locale/domain pair.
type Translator interface {
	T(msgid string) string
	Locale() string
}

type catalogFile struct {
	Domain   string            `yaml:"domain"`
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

type key struct{ domain, locale string }

// Catalog holds every loaded translation table.
type Catalog struct {
	mu     sync.RWMutex
	tables map[key]map[string]string
}

// Default loads the catalogs shipped with the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "catalogs")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load parses every *.yaml file at the root of fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{tables: make(map[key]map[string]string)}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read catalogs: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", e.Name(), err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", e.Name(), err)
		}
		if f.Domain == "" || f.Locale == "" {
			return nil, fmt.Errorf("catalog %s: domain and locale are required", e.Name())
		}
		for id, msg := range f.Messages {
			if msg != "" && !slices.Equal(placeholders(id), placeholders(msg)) {
				return nil, fmt.Errorf("catalog %s: translation of %q changes its format verbs", e.Name(), id)
			}
		}
		c.Add(f.Domain, f.Locale, f.Messages)
	}
	return c, nil
}

var verbPattern = regexp.MustCompile(`%(\[\d+\])?[-+# 0]*\d*(\.\d+)?[a-zA-Z%]`)

// placeholders returns the sorted fmt verbs of s, "%%" excluded.
func placeholders(s string) []string {
	verbs := slices.DeleteFunc(verbPattern.FindAllString(s, -1), func(v string) bool { return v == "%%" })
	slices.Sort(verbs)
	return verbs
}

// Add merges messages into the domain/locale table.
func (c *Catalog) Add(domain, locale string, messages map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key{domain, locale}
	table, ok := c.tables[k]
	if !ok {
		table = make(map[string]string, len(messages))
		c.tables[k] = table
	}
	for id, msg := range messages {
		table[id] = msg
	}
}

// Translator returns the translator for domain and locale. A locale such as
// "de_AT" falls back to any loaded "de_*" table; unknown locales translate to
// the message id itself.
func (c *Catalog) Translator(domain, locale string) Translator {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if table, ok := c.tables[key{domain, locale}]; ok {
		return translator{locale: locale, table: table}
	}
	lang, _, _ := strings.Cut(locale, "_")
	for k, table := range c.tables {
		if k.domain == domain && strings.HasPrefix(k.locale, lang+"_") {
			return translator{locale: k.locale, table: table}
		}
	}
	return translator{locale: locale}
}

type translator struct {
	locale string
	table  map[string]string
}

func (t translator) T(msgid string) string {
	if msg, ok := t.table[msgid]; ok && msg != "" {
		return msg
	}
	return msgid
}

func (t translator) Locale() string {
	return t.locale
}
