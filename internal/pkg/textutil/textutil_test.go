package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Hola mundo", "Hola mundo"},
		{"inline tags", "<strong>Hola</strong> <em>mundo</em>", "Hola mundo"},
		{"paragraphs do not merge", "<p>Hola</p><p>mundo</p>", "Hola mundo"},
		{"line break", "uno<br>dos<br/>tres", "uno dos tres"},
		{"entities decoded", "<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3"},
		{"script dropped", "antes<script>alert('x')</script>después", "antesdespués"},
		{"style dropped", "<style>p{color:red}</style><p>texto</p>", "texto"},
		{"self-closing script keeps text", "<script/>hello world", "hello world"},
		{"self-closing style keeps text", "<style/>uno dos tres", "uno dos tres"},
		{"html comment dropped", "a<!-- oculto -->b", "ab"},
		{"attributes dropped", `<a href="http://example.com" title="t">enlace</a>`, "enlace"},
		{"surrounding space trimmed", "  <p> hola </p>  ", "hola"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTags(tt.input))
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"two words", "Hola mundo", 2},
		{"punctuation separates", "Hello,world! Bye.", 3},
		{"apostrophe inside word", "It's fine", 2},
		{"hyphenated word", "well-known fact", 2},
		{"digits are not words", "123 abc 456", 1},
		{"non-ascii letters", "Número de ñandúes", 3},
		{"only dashes", "- -- '", 0},
		{"multiple spaces and newlines", "uno\n\n  dos\tTres", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.input))
		})
	}
}

func TestCountWords_AfterStripTags(t *testing.T) {
	body := "<p>Me gustó <strong>mucho</strong> el artículo.</p><p>Gracias</p>"

	assert.Equal(t, 6, CountWords(StripTags(body)))
}

func TestCountWords_SelfClosingRawTextTag(t *testing.T) {
	assert.Equal(t, 3, CountWords(StripTags("<style/>uno dos tres")))
}
