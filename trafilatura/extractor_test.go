package trafilatura_test

import (
	"testing"

	"github.com/dartisan/webscraper"
	"github.com/dartisan/webscraper/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements webscraper.Extractor at compile time.
var _ webscraper.Extractor = (*trafilatura.Extractor)(nil)

const productPage = `<!DOCTYPE html>
<html>
<head>
<title>Acme Widgets - Acme Store</title>
<meta property="og:title" content="Acme Widgets">
</head>
<body>
<nav><a href="/">Store Home Link</a><a href="/cart">Shopping Cart Link</a></nav>
<main>
<article>
<h1>Acme Widgets</h1>
<p>The Acme widget is a durable, all-purpose widget made from recycled aluminium.
It ships worldwide within three business days and carries a two year warranty.</p>
<p>Every widget is tested by hand before it leaves the factory floor, and the
company publishes the results of each batch test on its quality page.</p>
<table>
<tr><th>Model</th><th>Price</th></tr>
<tr><td>Standard</td><td>$19.99</td></tr>
<tr><td>Deluxe</td><td>$29.99</td></tr>
</table>
</article>
</main>
<footer><p>Copyright Acme Footer Notice</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(productPage)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("keeps article text", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(productPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "recycled aluminium")
	})

	t.Run("keeps tables", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(productPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "$29.99")
	})

	t.Run("drops navigation and footer", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(productPage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Shopping Cart Link")
		assert.NotContains(t, result.ContentHTML, "Acme Footer Notice")
	})

	t.Run("works without fallback", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor(trafilatura.WithoutFallback(), trafilatura.WithLinks()).Extract(productPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "two year warranty")
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(" \n")

		require.Error(t, err)
		assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
	})
}
