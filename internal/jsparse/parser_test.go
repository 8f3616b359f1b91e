package jsparse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gettext-extractor/internal/comments"
	"gettext-extractor/internal/extractor"
)

func newTestParser(t *testing.T, comment *comments.Options, names ...string) *Parser {
	t.Helper()
	ex, err := extractor.New(extractor.ArgumentMapping{
		Text:       0,
		TextPlural: extractor.Position(1),
		Comments:   extractor.Position(2),
		Context:    extractor.Position(3),
	}, extractor.DefaultContentOptions(), comment)
	require.NoError(t, err)
	return NewParser(NewCallExtractor(ex, names...))
}

func TestParseSource(t *testing.T) {
	t.Run("plain calls", func(t *testing.T) {
		p := newTestParser(t, nil, "getText")

		src := []byte(`
const a = getText('Foo');
const b = getText("One file", "%d files");
notTranslatable('Bar');
`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Foo", got[0].Message.Text)
		assert.Equal(t, "app.js:2", got[0].Reference())
		assert.Equal(t, "One file", got[1].Message.Text)
		assert.Equal(t, "%d files", got[1].Message.TextPlural)
		assert.Equal(t, 3, got[1].Line)
	})

	t.Run("dotted callee names", func(t *testing.T) {
		p := newTestParser(t, nil, "i18n.t", "this.translate")

		src := []byte(`
i18n.t('Foo');
other.t('Bar');
this.translate('Baz');
`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Foo", got[0].Message.Text)
		assert.Equal(t, "Baz", got[1].Message.Text)
	})

	t.Run("string concatenation folds", func(t *testing.T) {
		p := newTestParser(t, nil, "getText")

		src := []byte(`getText('Hello ' + "big " + 'world');`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Hello big world", got[0].Message.Text)
	})

	t.Run("concatenation with a variable poisons the fold", func(t *testing.T) {
		p := newTestParser(t, nil, "getText")

		src := []byte(`getText('Hello ' + name);`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("template strings without substitutions", func(t *testing.T) {
		p := newTestParser(t, nil, "getText")

		src := []byte("getText(`Foo`);\ngetText(`Foo ${bar}`);")
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Foo", got[0].Message.Text)
	})

	t.Run("escape sequences", func(t *testing.T) {
		p := newTestParser(t, nil, "getText")

		src := []byte(`getText('line1\nline2 é \'quoted\'');`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "line1\nline2 é 'quoted'", got[0].Message.Text)
	})

	t.Run("omission markers and structured comments", func(t *testing.T) {
		p := newTestParser(t, &comments.Options{
			PropGroups: map[string][]string{"props": {"{", "}"}},
		}, "getText")

		src := []byte(`getText('Foo', null, {comment: 'C', props: {PLACE: 'The place'}}, 'menu');`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		require.NoError(t, err)
		require.Len(t, got, 1)
		msg := got[0].Message
		assert.Equal(t, "Foo", msg.Text)
		assert.Empty(t, msg.TextPlural)
		assert.Equal(t, "menu", msg.Context)
		assert.Equal(t, []string{"C", "{PLACE}: The place"}, msg.Comments)
	})

	t.Run("malformed comment aborts only its own call site", func(t *testing.T) {
		p := newTestParser(t, &comments.Options{ThrowOnMalformed: true}, "getText")

		src := []byte(`
getText('Bad', null, {count: 3});
getText('Good', null, {comment: 'fine'});
`)
		got, err := p.ParseSource(context.Background(), src, "app.js")
		var malformed *comments.MalformedCommentError
		require.ErrorAs(t, err, &malformed)
		assert.Contains(t, err.Error(), "app.js:2")
		require.Len(t, got, 1)
		assert.Equal(t, "Good", got[0].Message.Text)
	})
}

func TestCalleeNameMatching(t *testing.T) {
	p := newTestParser(t, nil, "getText")

	// Calls whose callee cannot be matched by name are skipped, not errors.
	src := []byte(`
fns[0]('Foo');
make()('Bar');
(getText)('Baz');
`)
	got, err := p.ParseSource(context.Background(), src, "app.js")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Baz", got[0].Message.Text)
}
