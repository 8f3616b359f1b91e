package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gettext-extractor/internal/literal"
)

func field(key string, v *literal.Value) literal.Field {
	return literal.Field{Key: key, Value: v}
}

func TestFlatten(t *testing.T) {
	groups := &Options{PropGroups: map[string][]string{"props": {"{", "}"}}}

	t.Run("documented example", func(t *testing.T) {
		value := literal.Object(
			field("comment", literal.String("C")),
			field("props", literal.Object(field("PLACE", literal.String("The place")))),
			field("path", literal.String("http://x")),
		)

		lines, err := Flatten(value, groups, "Foo", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "path: http://x", "{PLACE}: The place"}, lines)
	})

	t.Run("category order is fixed regardless of declaration order", func(t *testing.T) {
		value := literal.Object(
			field("nested", literal.Object(field("k", literal.String("v")))),
			field("props", literal.Object(field("PLACE", literal.String("The place")))),
			field("path", literal.String("http://x")),
			field("comment", literal.String("C")),
		)

		lines, err := Flatten(value, groups, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "path: http://x", "{PLACE}: The place", "nested.k: v"}, lines)
	})

	t.Run("single plain comment round-trips through SplitPlain", func(t *testing.T) {
		text := "first\nsecond"
		value := literal.Object(field("comment", literal.String(text)))

		lines, err := Flatten(value, &Options{}, "", "")
		require.NoError(t, err)
		assert.Equal(t, SplitPlain(text), lines)
	})

	t.Run("multi-line values expand in every category", func(t *testing.T) {
		value := literal.Object(
			field("comment", literal.String("a\nb")),
			field("path", literal.String("x\ny")),
			field("props", literal.Object(field("P", literal.String("1\n2")))),
		)

		lines, err := Flatten(value, groups, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"a", "b",
			"path: x", "path: y",
			"{P}: 1", "{P}: 2",
		}, lines)
	})

	t.Run("deeply nested keys use the dotted path", func(t *testing.T) {
		value := literal.Object(
			field("a", literal.Object(
				field("b", literal.Object(field("c", literal.String("deep")))),
			)),
		)

		lines, err := Flatten(value, &Options{}, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.b.c: deep"}, lines)
	})

	t.Run("prop groups are only recognized at the top level", func(t *testing.T) {
		value := literal.Object(
			field("outer", literal.Object(
				field("props", literal.Object(field("A", literal.String("x")))),
			)),
		)

		lines, err := Flatten(value, groups, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"outer.props.A: x"}, lines)
	})

	t.Run("objects inside a group fall back to dotted keys", func(t *testing.T) {
		value := literal.Object(
			field("props", literal.Object(
				field("A", literal.Object(field("B", literal.String("x")))),
			)),
		)

		lines, err := Flatten(value, groups, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"A.B: x"}, lines)
	})

	t.Run("custom comment key", func(t *testing.T) {
		value := literal.Object(
			field("note", literal.String("plain")),
			field("comment", literal.String("not plain anymore")),
		)

		lines, err := Flatten(value, &Options{CommentKey: "note"}, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"plain", "comment: not plain anymore"}, lines)
	})
}

func TestFlatten_Malformed(t *testing.T) {
	value := literal.Object(
		field("comment", literal.String("C")),
		field("meta", literal.Object(field("count", literal.Number(3)))),
		field("path", literal.String("http://x")),
	)

	t.Run("strict", func(t *testing.T) {
		_, err := Flatten(value, &Options{ThrowOnMalformed: true}, "Foo", "Ctx")
		var malformed *MalformedCommentError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "meta.count", malformed.KeyPath)
		assert.Equal(t, "Foo", malformed.Text)
		assert.Equal(t, "Ctx", malformed.Context)
		assert.Contains(t, malformed.Error(), `"meta.count"`)
	})

	t.Run("lenient keeps the siblings", func(t *testing.T) {
		lines, err := Flatten(value, &Options{}, "Foo", "Ctx")
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "path: http://x"}, lines)
	})
}

func TestOptionsValidate(t *testing.T) {
	err := (&Options{PropGroups: map[string][]string{"props": {"{", "}", "!"}}}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "props")

	assert.NoError(t, (&Options{PropGroups: map[string][]string{"props": {"{", "}"}}}).Validate())
}

func TestSplitPlain(t *testing.T) {
	assert.Equal(t, []string{"one"}, SplitPlain("one"))
	assert.Equal(t, []string{"one", "two"}, SplitPlain("one\ntwo"))
	assert.Equal(t, []string{"one", "two"}, SplitPlain("one\r\ntwo"))
}
