package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/peternovig/formulae/formula/parse"
)

func TestTree(t *testing.T) {
	expr := parse.MustParse("=SUM(Sheet1!A1, 'x', n := 1.50)")
	want := Node{
		Kind:  "Call",
		Attrs: map[string]string{"args": "3"},
		Children: []Node{
			{Kind: "Variable", Attrs: map[string]string{"name": "SUM"}},
			{Kind: "Variable", Attrs: map[string]string{"name": "A1", "level": "Sheet1"}},
			{Kind: "Literal", Attrs: map[string]string{"type": "text", "value": "x"}},
			{
				Kind:  "Assign",
				Attrs: map[string]string{"name": "n"},
				Children: []Node{
					{Kind: "Literal", Attrs: map[string]string{"type": "number", "value": "1.5", "lexeme": "1.50"}},
				},
			},
		},
	}
	assert.Equal(t, want, Tree(expr))
	assert.Equal(t, Node{Kind: "nil"}, Tree(nil))
}

func TestTreeOperators(t *testing.T) {
	got := Tree(parse.MustParse("-(`a b` ^ TRUE)"))
	want := Node{
		Kind:  "Unary",
		Attrs: map[string]string{"op": "-"},
		Children: []Node{
			{
				Kind: "Grouping",
				Children: []Node{
					{
						Kind:  "Binary",
						Attrs: map[string]string{"op": "^"},
						Children: []Node{
							{Kind: "QuotedName", Attrs: map[string]string{"name": "a b"}},
							{Kind: "Literal", Attrs: map[string]string{"type": "boolean", "value": "TRUE"}},
						},
					},
				},
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, parse.MustParse("1+A1")))

	want := `{
  "kind": "Binary",
  "attrs": {
    "op": "+"
  },
  "children": [
    {
      "kind": "Literal",
      "attrs": {
        "type": "number",
        "value": "1"
      }
    },
    {
      "kind": "Variable",
      "attrs": {
        "name": "A1"
      }
    }
  ]
}
`
	assert.Equal(t, want, buf.String())

	var back Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, Tree(parse.MustParse("1+A1")), back)
}

func TestYAML(t *testing.T) {
	expr := parse.MustParse("IF(A1 >= 0, \"pos\", NULL)")

	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, expr))
	assert.Contains(t, buf.String(), "kind: Call")

	var back Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, Tree(expr), back)
}
