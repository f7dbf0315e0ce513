package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	de := c.Translator("woocommerce-booking", "de_DE")
	assert.Equal(t, "de_DE", de.Locale())
	assert.Equal(t, "Diesen Hinweis ausblenden.", de.T("Dismiss this notice."))
	assert.Equal(t, "Buchung", de.T("Booking"))
}

func TestTranslatorFallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"shop.de_DE.yaml": {Data: []byte("domain: shop\nlocale: de_DE\nmessages:\n  Hello: Hallo\n  Empty: ''\n")},
		"README.md":       {Data: []byte("ignored")},
	}
	c, err := Load(fsys)
	require.NoError(t, err)

	t.Run("language fallback", func(t *testing.T) {
		tr := c.Translator("shop", "de_AT")
		assert.Equal(t, "de_DE", tr.Locale())
		assert.Equal(t, "Hallo", tr.T("Hello"))
	})

	t.Run("unknown locale returns msgid", func(t *testing.T) {
		tr := c.Translator("shop", "ja_JP")
		assert.Equal(t, "Hello", tr.T("Hello"))
	})

	t.Run("unknown domain returns msgid", func(t *testing.T) {
		assert.Equal(t, "Hello", c.Translator("other", "de_DE").T("Hello"))
	})

	t.Run("empty translation returns msgid", func(t *testing.T) {
		assert.Equal(t, "Empty", c.Translator("shop", "de_DE").T("Empty"))
	})
}

func TestLoadRejectsIncompleteCatalog(t *testing.T) {
	_, err := Load(fstest.MapFS{"x.yaml": {Data: []byte("messages: {}\n")}})
	require.Error(t, err)
}

func TestShippedTranslationsKeepFormatVerbs(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for k, table := range c.tables {
		for id, msg := range table {
			assert.Equal(t, placeholders(id), placeholders(msg), "%s/%s: %q", k.domain, k.locale, id)
		}
	}
}

func TestLoadRejectsChangedFormatVerbs(t *testing.T) {
	tests := []struct {
		name string
		msg  string
	}{
		{"dropped", "Lizenz für <b>%[1]s</b> ist inaktiv."},
		{"duplicated", "<b>%[1]s</b> <a href=\"%[1]s\">x</a>"},
		{"extra", "%[1]s %[2]s %[3]s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "domain: shop\nlocale: de_DE\nmessages:\n  '<b>%[1]s</b> <a href=\"%[2]s\">x</a>': '" + tt.msg + "'\n"
			_, err := Load(fstest.MapFS{"shop.de_DE.yaml": {Data: []byte(data)}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "format verbs")
		})
	}

	t.Run("reordered verbs are accepted", func(t *testing.T) {
		data := "domain: shop\nlocale: de_DE\nmessages:\n  '%[1]s by %[2]s': 'von %[2]s: %[1]s'\n  '100%%': '100 %%'\n"
		_, err := Load(fstest.MapFS{"shop.de_DE.yaml": {Data: []byte(data)}})
		require.NoError(t, err)
	})
}
