package link_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/cursor"
	"github.com/yaklabco/docweave/pkg/link"
)

func text(s string) ast.Text { return ast.Text{Content: s} }

func para(spans ...ast.Span) ast.Paragraph { return ast.Paragraph{Content: spans} }

// resolveSingle resolves a tree holding one document at /doc.rst.
func resolveSingle(t *testing.T, blocks ...ast.Block) *ast.Document {
	t.Helper()

	tree := &ast.DocumentTree{
		Path:    ast.Root,
		Content: []ast.TreeContent{&ast.Document{Path: ast.ParsePath("/doc.rst"), Content: blocks}},
	}
	out, err := link.ResolveTree(context.Background(), cursor.NewRoot(tree))
	require.NoError(t, err)

	docs := out.AllDocuments()
	require.Len(t, docs, 1)
	return docs[0]
}

func spansOf(t *testing.T, b ast.Block) []ast.Span {
	t.Helper()
	p, ok := b.(ast.Paragraph)
	require.True(t, ok, "expected paragraph, got %T", b)
	return p.Content
}

func TestCitationReference(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.Citation{Label: "label", Content: []ast.Block{para(text("citation"))}},
		para(ast.CitationReference{Label: "label", Source: ast.Source{Text: "[label]_"}}),
	)

	require.Len(t, doc.Content, 2)
	citation, ok := doc.Content[0].(ast.Citation)
	require.True(t, ok)
	assert.Equal(t, "__cit-label", citation.ID)

	spans := spansOf(t, doc.Content[1])
	require.Len(t, spans, 1)
	assert.Equal(t, ast.CitationLink{Ref: "__cit-label", Label: "[label]"}, spans[0])
}

func TestFootnoteNumbering(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		para(
			ast.FootnoteReference{Label: ast.Autonumber{}, Source: ast.Source{Text: "[#]_"}},
			ast.FootnoteReference{Label: ast.NumericLabel{Number: 1}, Source: ast.Source{Text: "[1]_"}},
			ast.FootnoteReference{Label: ast.Autonumber{}, Source: ast.Source{Text: "[#]_"}},
		),
		ast.FootnoteDefinition{Label: ast.Autonumber{}, Content: []ast.Block{para(text("first"))}},
		ast.FootnoteDefinition{Label: ast.NumericLabel{Number: 1}, Content: []ast.Block{para(text("numeric"))}},
		ast.FootnoteDefinition{Label: ast.Autonumber{}, Content: []ast.Block{para(text("second"))}},
	)

	assert.Equal(t, []ast.Span{
		ast.FootnoteLink{Ref: "__fn-1", Label: "1"},
		ast.FootnoteLink{Ref: "__fnl-1", Label: "1"},
		ast.FootnoteLink{Ref: "__fn-2", Label: "2"},
	}, spansOf(t, doc.Content[0]))

	var labels []string
	for _, fn := range ast.FindAll[ast.Footnote](doc.Content) {
		labels = append(labels, fn.Label+"/"+fn.ID)
	}
	assert.Equal(t, []string{"1/__fn-1", "1/__fnl-1", "2/__fn-2"}, labels)
}

func TestAutosymbolCycling(t *testing.T) {
	t.Parallel()

	var refs []ast.Span
	blocks := []ast.Block{nil}
	for range 11 {
		refs = append(refs, ast.FootnoteReference{Label: ast.Autosymbol{}, Source: ast.Source{Text: "[*]_"}})
		blocks = append(blocks, ast.FootnoteDefinition{Label: ast.Autosymbol{}})
	}
	blocks[0] = para(refs...)

	doc := resolveSingle(t, blocks...)
	spans := spansOf(t, doc.Content[0])
	require.Len(t, spans, 11)

	first, ok := spans[0].(ast.FootnoteLink)
	require.True(t, ok)
	assert.Equal(t, "*", first.Label)

	last, ok := spans[10].(ast.FootnoteLink)
	require.True(t, ok)
	assert.Equal(t, "**", last.Label)
}

func TestTooManySequenceReferences(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.FootnoteDefinition{Label: ast.Autonumber{}},
		para(
			ast.FootnoteReference{Label: ast.Autonumber{}, Source: ast.Source{Text: "[#]_"}},
			ast.FootnoteReference{Label: ast.Autonumber{}, Source: ast.Source{Text: "[#]_"}},
		),
	)

	spans := spansOf(t, doc.Content[1])
	require.Len(t, spans, 2)
	assert.IsType(t, ast.FootnoteLink{}, spans[0])

	invalid, ok := spans[1].(ast.InvalidSpan)
	require.True(t, ok)
	assert.Equal(t, "too many autonumber references", invalid.Message.Content)
	assert.Equal(t, ast.Text{Content: "[#]_"}, invalid.Fallback)
}

func TestAliasCycle(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.LinkAlias{ID: "A", Target: "B"},
		ast.LinkAlias{ID: "B", Target: "A"},
		para(ast.LinkIDReference{Content: []ast.Span{text("go")}, ID: "A", Source: ast.Source{Text: "`go <A_>`_"}}),
	)

	// Aliases have no rendering.
	require.Len(t, doc.Content, 1)

	invalid := ast.FindAll[ast.InvalidSpan](doc.Content)
	require.Len(t, invalid, 1)
	assert.Contains(t, invalid[0].Message.Content, "circular link reference")
}

func TestAliasChain(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.LinkAlias{ID: "first", Target: "second"},
		ast.LinkAlias{ID: "second", Target: "site"},
		ast.ExternalLinkDefinition{ID: "site", URL: "https://example.com/"},
		para(ast.LinkIDReference{Content: []ast.Span{text("site")}, ID: "first"}),
	)

	require.Len(t, doc.Content, 1)
	assert.Equal(t, []ast.Span{ast.SpanLink{
		Content: []ast.Span{text("site")},
		Target:  ast.ExternalTarget{URL: "https://example.com/"},
	}}, spansOf(t, doc.Content[0]))
}

func TestExternalLinkDefinition(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.ExternalLinkDefinition{ID: "name", URL: "http://foo/"},
		para(ast.LinkIDReference{Content: []ast.Span{text("foo")}, ID: "name"}),
	)

	require.Len(t, doc.Content, 1)
	assert.Equal(t, []ast.Span{ast.SpanLink{
		Content: []ast.Span{text("foo")},
		Target:  ast.ExternalTarget{URL: "http://foo/"},
	}}, spansOf(t, doc.Content[0]))
}

func TestImageIDReference(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.ExternalLinkDefinition{ID: "logo", URL: "http://foo/logo.png"},
		para(ast.ImageIDReference{Alt: "Logo", ID: "logo"}),
		para(ast.ImageIDReference{Alt: "Missing", ID: "missing", Source: ast.Source{Text: "|missing|"}}),
	)

	require.Len(t, doc.Content, 2)
	assert.Equal(t, []ast.Span{ast.Image{
		Alt:    "Logo",
		Target: ast.ExternalTarget{URL: "http://foo/logo.png"},
	}}, spansOf(t, doc.Content[0]))

	spans := spansOf(t, doc.Content[1])
	require.Len(t, spans, 1)
	invalid, ok := spans[0].(ast.InvalidSpan)
	require.True(t, ok, "expected invalid span, got %T", spans[0])
	assert.Contains(t, invalid.Message.Content, "unresolved image reference: missing")
}

func TestAnonymousDefinitionsInOrder(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		para(
			ast.LinkIDReference{Content: []ast.Span{text("one")}},
			ast.LinkIDReference{Content: []ast.Span{text("two")}},
		),
		ast.ExternalLinkDefinition{URL: "https://one.example/"},
		ast.ExternalLinkDefinition{URL: "https://two.example/"},
	)

	require.Len(t, doc.Content, 1)
	spans := spansOf(t, doc.Content[0])
	require.Len(t, spans, 2)
	assert.Equal(t, ast.ExternalTarget{URL: "https://one.example/"}, spans[0].(ast.SpanLink).Target)
	assert.Equal(t, ast.ExternalTarget{URL: "https://two.example/"}, spans[1].(ast.SpanLink).Target)
}

func TestDuplicateIDs(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.Paragraph{Content: []ast.Span{text("one")}, Options: ast.Options{ID: "dup"}},
		ast.Paragraph{Content: []ast.Span{text("two")}, Options: ast.Options{ID: "dup"}},
		para(ast.LinkIDReference{Content: []ast.Span{text("ref")}, ID: "dup", Source: ast.Source{Text: "`dup`_"}}),
	)

	require.Len(t, doc.Content, 3)
	for _, b := range doc.Content[:2] {
		invalid, ok := b.(ast.InvalidBlock)
		require.True(t, ok, "expected invalid block, got %T", b)
		assert.Contains(t, invalid.Message.Content, "'dup'")
		assert.Contains(t, invalid.Message.Content, "/doc.rst")
	}

	spans := spansOf(t, doc.Content[2])
	require.Len(t, spans, 1)
	invalid, ok := spans[0].(ast.InvalidSpan)
	require.True(t, ok)
	assert.Contains(t, invalid.Message.Content, "ambiguous reference")
}

func TestDuplicateIDsAreNotAnchors(t *testing.T) {
	t.Parallel()

	provider := link.NewTargetProvider(&ast.Document{
		Path: ast.ParsePath("/doc.rst"),
		Content: []ast.Block{
			ast.Paragraph{Content: []ast.Span{text("one")}, Options: ast.Options{ID: "dup"}},
			ast.Paragraph{Content: []ast.Span{text("two")}, Options: ast.Options{ID: "dup"}},
			ast.Paragraph{Content: []ast.Span{text("three")}, Options: ast.Options{ID: "solo"}},
		},
	})

	assert.False(t, provider.HasAnchor("dup"))
	assert.True(t, provider.HasAnchor("solo"))
}

func TestUnresolvedReferences(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t, para(
		ast.LinkIDReference{Content: []ast.Span{text("x")}, ID: "missing", Source: ast.Source{Text: "`x <missing_>`_"}},
		ast.CitationReference{Label: "nobody", Source: ast.Source{Text: "[nobody]_"}},
		ast.FootnoteReference{Label: ast.NumericLabel{Number: 7}, Source: ast.Source{Text: "[7]_"}},
	))

	var messages []string
	for _, s := range spansOf(t, doc.Content[0]) {
		invalid, ok := s.(ast.InvalidSpan)
		require.True(t, ok, "expected invalid span, got %T", s)
		messages = append(messages, invalid.Message.Content)
	}
	assert.Equal(t, []string{
		"unresolved link id reference: missing",
		"unresolved citation reference: nobody",
		"unresolved footnote reference: [7]",
	}, messages)
}

func TestHeaderLevelsAndIDs(t *testing.T) {
	t.Parallel()

	over := ast.HeaderDecoration{Char: '=', Overline: true}
	under := ast.HeaderDecoration{Char: '-'}
	doc := resolveSingle(t,
		ast.DecoratedHeader{Decoration: over, Content: []ast.Span{text("Title")}},
		ast.DecoratedHeader{Decoration: under, Content: []ast.Span{text("Section")}},
		ast.DecoratedHeader{Decoration: over, Content: []ast.Span{text("Other Title")}},
		ast.DecoratedHeader{Decoration: under, Content: []ast.Span{text("Section")}},
		ast.Header{Level: 3, Content: []ast.Span{text("Explicit")}, Options: ast.Options{ID: "title-1"}},
	)

	type header struct {
		level int
		id    string
	}
	var got []header
	for _, h := range ast.FindAll[ast.Header](doc.Content) {
		got = append(got, header{h.Level, h.ID})
	}
	assert.Equal(t, []header{
		{1, "title"},
		{2, "section"},
		{1, "other-title"},
		{2, "section-1"},
		{3, "title-1"},
	}, got)
}

func TestHeaderReferenceByText(t *testing.T) {
	t.Parallel()

	doc := resolveSingle(t,
		ast.Header{Level: 1, Content: []ast.Span{text("Getting Started")}},
		para(ast.LinkIDReference{ID: "Getting Started"}),
	)

	spans := spansOf(t, doc.Content[1])
	require.Len(t, spans, 1)
	linked, ok := spans[0].(ast.SpanLink)
	require.True(t, ok, "expected link, got %T", spans[0])
	assert.Equal(t, []ast.Span{text("Getting Started")}, linked.Content)
	target, ok := linked.Target.(ast.InternalTarget)
	require.True(t, ok)
	assert.Equal(t, "/doc.rst#getting-started", target.Path.String())
	assert.True(t, target.Validated)
}

func crossDocumentTree() *ast.DocumentTree {
	return &ast.DocumentTree{
		Path:   ast.Root,
		Config: ast.TreeConfig{LinkTargets: map[string]string{"home": "https://example.com"}},
		TitleDocument: &ast.Document{
			Path:    ast.ParsePath("/index.rst"),
			Content: []ast.Block{ast.ExternalLinkDefinition{ID: "shared", URL: "https://shared.example/"}},
		},
		Content: []ast.TreeContent{
			&ast.Document{
				Path: ast.ParsePath("/a.rst"),
				Content: []ast.Block{
					ast.Header{Level: 1, Content: []ast.Span{text("Intro")}, Options: ast.Options{ID: "intro"}},
				},
			},
			&ast.DocumentTree{
				Path:            ast.ParsePath("/sub"),
				Config:          ast.TreeConfig{LinkValidation: ast.LinkValidation{Excluded: []string{"/sub/drafts/*"}}},
				StaticDocuments: []ast.Path{ast.ParsePath("/sub/logo.png")},
				Content: []ast.TreeContent{
					&ast.Document{
						Path: ast.ParsePath("/sub/b.rst"),
						Content: []ast.Block{para(
							ast.PathReference{Content: []ast.Span{text("intro")}, Path: "../a.rst#intro"},
							ast.PathReference{Path: "../missing.rst", Source: ast.Source{Text: ":doc:`../missing`"}},
							ast.PathReference{Path: "drafts/wip.rst"},
							ast.PathReference{Path: "logo.png"},
							ast.LinkIDReference{Content: []ast.Span{text("shared")}, ID: "shared"},
							ast.LinkIDReference{Content: []ast.Span{text("home")}, ID: "home"},
							ast.PathReference{Path: "../a.rst"},
						)},
					},
				},
			},
		},
	}
}

func TestCrossDocumentResolution(t *testing.T) {
	t.Parallel()

	root := cursor.NewRoot(crossDocumentTree())
	out, err := link.ResolveTree(context.Background(), root)
	require.NoError(t, err)

	var doc *ast.Document
	for _, d := range out.AllDocuments() {
		if d.Path.String() == "/sub/b.rst" {
			doc = d
		}
	}
	require.NotNil(t, doc)
	spans := spansOf(t, doc.Content[0])
	require.Len(t, spans, 7)

	intro, ok := spans[0].(ast.SpanLink)
	require.True(t, ok, "expected link, got %T", spans[0])
	assert.Equal(t, ast.InternalTarget{
		Path:      ast.ParsePath("/a.rst#intro"),
		Relative:  "../a.rst#intro",
		Validated: true,
	}, intro.Target)

	missing, ok := spans[1].(ast.InvalidSpan)
	require.True(t, ok, "expected invalid span, got %T", spans[1])
	assert.Equal(t, "unresolved internal reference: /missing.rst", missing.Message.Content)

	draft, ok := spans[2].(ast.SpanLink)
	require.True(t, ok, "excluded paths are not validated, got %T", spans[2])
	assert.False(t, draft.Target.(ast.InternalTarget).Validated)

	logo, ok := spans[3].(ast.SpanLink)
	require.True(t, ok, "expected link, got %T", spans[3])
	assert.True(t, logo.Target.(ast.InternalTarget).Validated)

	assert.Equal(t, ast.ExternalTarget{URL: "https://shared.example/"}, spans[4].(ast.SpanLink).Target)
	assert.Equal(t, ast.ExternalTarget{URL: "https://example.com"}, spans[5].(ast.SpanLink).Target)

	whole, ok := spans[6].(ast.SpanLink)
	require.True(t, ok, "expected link, got %T", spans[6])
	assert.Equal(t, []ast.Span{text("Intro")}, whole.Content)
}

func TestDefinitionFragmentMatchesHeaderSlug(t *testing.T) {
	t.Parallel()

	tree := &ast.DocumentTree{
		Path: ast.Root,
		Content: []ast.TreeContent{
			&ast.Document{
				Path: ast.ParsePath("/a.rst"),
				Content: []ast.Block{
					ast.InternalLinkDefinition{ID: "part", Path: "other.rst#Intro Part"},
					para(
						ast.LinkIDReference{Content: []ast.Span{text("part")}, ID: "part"},
						ast.PathReference{Content: []ast.Span{text("path")}, Path: "other.rst#Intro Part"},
					),
				},
			},
			&ast.Document{
				Path:    ast.ParsePath("/other.rst"),
				Content: []ast.Block{ast.Header{Level: 1, Content: []ast.Span{text("Intro Part")}}},
			},
		},
	}

	out, err := link.ResolveTree(context.Background(), cursor.NewRoot(tree))
	require.NoError(t, err)

	var doc *ast.Document
	for _, d := range out.AllDocuments() {
		if d.Path.String() == "/a.rst" {
			doc = d
		}
	}
	require.NotNil(t, doc)
	require.Len(t, doc.Content, 1)

	want := ast.InternalTarget{
		Path:      ast.ParsePath("/other.rst#intro-part"),
		Relative:  "other.rst#intro-part",
		Validated: true,
	}
	spans := spansOf(t, doc.Content[0])
	require.Len(t, spans, 2)
	for i, span := range spans {
		linked, ok := span.(ast.SpanLink)
		require.True(t, ok, "span %d: expected link, got %T", i, span)
		assert.Equal(t, want, linked.Target, "span %d", i)
	}
}

func TestRelativeImagesAndLinks(t *testing.T) {
	t.Parallel()

	tree := &ast.DocumentTree{
		Path:            ast.Root,
		StaticDocuments: []ast.Path{ast.ParsePath("/img/logo.png")},
		Content: []ast.TreeContent{&ast.Document{
			Path: ast.ParsePath("/doc.md"),
			Content: []ast.Block{para(
				ast.Image{Alt: "logo", Target: ast.InternalTarget{Relative: "img/logo.png"}},
				ast.SpanLink{Content: []ast.Span{text("gone")}, Target: ast.InternalTarget{Relative: "gone.md"}},
			)},
		}},
	}

	out, err := link.ResolveTree(context.Background(), cursor.NewRoot(tree))
	require.NoError(t, err)

	spans := spansOf(t, out.AllDocuments()[0].Content[0])
	require.Len(t, spans, 2)
	assert.Equal(t, ast.Image{Alt: "logo", Target: ast.InternalTarget{
		Path:      ast.ParsePath("/img/logo.png"),
		Relative:  "img/logo.png",
		Validated: true,
	}}, spans[0])

	gone, ok := spans[1].(ast.InvalidSpan)
	require.True(t, ok, "expected invalid span, got %T", spans[1])
	assert.Equal(t, "unresolved internal reference: /gone.md", gone.Message.Content)
}

func TestInvalidExclusionPattern(t *testing.T) {
	t.Parallel()

	tree := &ast.DocumentTree{
		Path:   ast.Root,
		Config: ast.TreeConfig{LinkValidation: ast.LinkValidation{Excluded: []string{"[unclosed"}}},
	}
	_, err := link.BuildIndex(context.Background(), cursor.NewRoot(tree))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unclosed")
}

func TestResolutionIsIdempotent(t *testing.T) {
	t.Parallel()

	tree := &ast.DocumentTree{
		Path: ast.Root,
		Content: []ast.TreeContent{&ast.Document{
			Path: ast.ParsePath("/doc.rst"),
			Content: []ast.Block{
				ast.Header{Level: 1, Content: []ast.Span{text("Intro")}},
				ast.ExternalLinkDefinition{ID: "name", URL: "http://foo/"},
				para(
					ast.LinkIDReference{Content: []ast.Span{text("foo")}, ID: "name"},
					ast.FootnoteReference{Label: ast.Autonumber{}, Source: ast.Source{Text: "[#]_"}},
					ast.CitationReference{Label: "c", Source: ast.Source{Text: "[c]_"}},
					ast.LinkIDReference{ID: "intro"},
				),
				ast.FootnoteDefinition{Label: ast.Autonumber{}, Content: []ast.Block{para(text("note"))}},
				ast.Citation{Label: "c", Content: []ast.Block{para(text("cite"))}},
			},
		}},
	}

	once, err := link.ResolveTree(context.Background(), cursor.NewRoot(tree))
	require.NoError(t, err)
	twice, err := link.ResolveTree(context.Background(), cursor.NewRoot(once))
	require.NoError(t, err)

	assert.Empty(t, ast.FindAll[ast.InvalidSpan](once.AllDocuments()[0].Content))
	assert.Equal(t, once.AllDocuments()[0].Content, twice.AllDocuments()[0].Content)
}

func TestGlobalIsSubsetOfLocal(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path: ast.ParsePath("/guide/setup.rst"),
		Content: []ast.Block{
			ast.Header{Level: 1, Content: []ast.Span{text("Setup")}},
			ast.Citation{Label: "ref"},
			ast.FootnoteDefinition{Label: ast.Autonumber{}},
			ast.FootnoteDefinition{Label: ast.AutonumberLabel{Label: "named"}},
			ast.ExternalLinkDefinition{ID: "site", URL: "https://example.com"},
			ast.ExternalLinkDefinition{URL: "https://anonymous.example"},
			ast.LinkAlias{ID: "alias", Target: "site"},
			para(ast.Emphasized{Content: []ast.Span{text("x")}, Options: ast.Options{ID: "marked"}}),
		},
	}
	provider := link.NewTargetProvider(doc)

	for sel := range provider.Global() {
		_, ok := provider.Local()[sel]
		assert.True(t, ok, "global selector %s missing from local", sel)
		assert.False(t, sel.IsSequence(), "sequence selector %s is global", sel)
	}

	_, ok := provider.LookupGlobal(link.PathSelector(ast.ParsePath("/guide/setup.rst")))
	assert.True(t, ok)
	_, ok = provider.LookupGlobal(link.PathSelector(ast.ParsePath("/guide/setup.rst#setup")))
	assert.True(t, ok)
	_, ok = provider.LookupGlobal(link.PathSelector(ast.ParsePath("/guide/setup.rst#marked")))
	assert.True(t, ok)
	_, ok = provider.Lookup(link.AutonumberSelector)
	assert.True(t, ok)
}
