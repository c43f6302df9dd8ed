package htmltomarkdown_test

import (
	"testing"

	"github.com/dartisan/webscraper"
	"github.com/dartisan/webscraper/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements webscraper.Converter at compile time.
var _ webscraper.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Catalog</h1><h2>Laptops</h2><p>Spring sale.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Catalog")
		assert.Contains(t, md, "## Laptops")
		assert.Contains(t, md, "Spring sale.")
	})

	t.Run("converts product lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>Widget - $10</li><li>Gadget - $25</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Widget - $10")
		assert.Contains(t, md, "- Gadget - $25")
	})

	t.Run("converts price tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Plan</th><th>Price</th></tr></thead>
<tbody><tr><td>Basic</td><td>$5</td></tr><tr><td>Pro</td><td>$15</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Plan")
		assert.Contains(t, md, "| Basic")
		assert.Contains(t, md, "$15")
	})

	t.Run("keeps absolute links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See <a href="https://example.com/terms">terms</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[terms](https://example.com/terms)")
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://shop.example.com"))
		md, err := conv.Convert(`<p><a href="/item/7">Item seven</a></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "https://shop.example.com/item/7")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("\n\n<p>Hello</p>\n\n")

		require.NoError(t, err)
		assert.Equal(t, "Hello", md)
	})

	t.Run("blank input yields blank output", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("  \n\t")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
