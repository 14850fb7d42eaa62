package live

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
)

var (
	minifier *minify.M
	once     sync.Once
)

func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", mhtml.Minify)
	})
	return minifier
}

// minifyHTML strips redundant whitespace from served documents. Minification
// failures fall back to the original markup.
func minifyHTML(s string) string {
	out, err := getMinifier().String("text/html", s)
	if err != nil {
		return s
	}
	return out
}
