package web

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"index.tmpl", "error.tmpl",
		"category_list.tmpl", "category_detail.tmpl", "category_form.tmpl", "category_delete.tmpl",
		"item_list.tmpl", "item_detail.tmpl", "item_form.tmpl", "item_delete.tmpl",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStoredDoesNotEscapeAgain(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "category_list.tmpl", map[string]any{
		"Title":      "Category List",
		"Categories": []map[string]string{{"Name": "Nuts &amp; Bolts", "URL": "/categories/1"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), ">Nuts &amp; Bolts</a>")
}

func TestPublicServesStylesheet(t *testing.T) {
	f, err := Public().Open("stylesheets/style.css")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
