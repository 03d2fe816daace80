package page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate(t *testing.T) {
	var templator Templator

	html, err := templator.Template(context.Background(), Params{
		Title:    "Artistry <beta>",
		Endpoint: "/api/generate-image",
	})
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "<title>Artistry &lt;beta&gt;</title>")
	assert.Regexp(t, `const endpoint = "(\\/|/)api(\\/|/)generate-image";`, page)
	for _, label := range []string{"Generate", "Download", "New Variation", "Start Over"} {
		assert.Contains(t, page, label)
	}

	again, err := templator.Template(context.Background(), Params{Title: "Other", Endpoint: "/x"})
	require.NoError(t, err)
	assert.Contains(t, string(again), "<title>Other</title>")
}
