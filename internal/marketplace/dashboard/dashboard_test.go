package dashboard

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bkap/internal/marketplace/models"
	"bkap/pkg/testutil"
)

func slugs(groups []models.EndpointGroup) [][]string {
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := make([]string, 0, len(g))
		for _, ep := range g {
			row = append(row, ep.Slug)
		}
		out = append(out, row)
	}
	return out
}

func TestCompose(t *testing.T) {
	eps := testutil.NewEndpointsBuilder().With("a", "A").With("b", "B").With("c", "C").Build()
	vendor := models.Vendor{ID: "7", ShopName: "Harbour Kayaks"}

	view := Compose(eps, "b", vendor)

	assert.Equal(t, "B", view.Heading)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, slugs(view.Groups))
	assert.Equal(t, "b", view.TargetSlug)
	assert.Equal(t, vendor, view.Vendor)
	assert.Equal(t, 3, view.Len())
}

func TestResolveHeading(t *testing.T) {
	eps := testutil.NewEndpointsBuilder().With("a", "A").Build()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"matching endpoint", "a", "A"},
		{"dashboard itself", "dashboard", "Dashboard"},
		{"unknown slug", "zzz", DefaultHeading},
		{"empty target", "", DefaultHeading},
		{"slug match is case sensitive", "A", DefaultHeading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveHeading(eps, tt.target))
		})
	}

	assert.Equal(t, DefaultHeading, ResolveHeading(nil, "a"))
}

func TestGroupEndpointsCount(t *testing.T) {
	for extra := 0; extra <= 9; extra++ {
		eps := testutil.NewEndpointsBuilder().WithN(extra).Build()
		n := len(eps)

		groups := GroupEndpoints(eps, GroupSize)

		require.Len(t, groups, (n-1+1)/2, "n=%d", n)
		for i, g := range groups {
			if i < len(groups)-1 {
				assert.Len(t, g, 2)
			} else {
				assert.Len(t, g, 2-(n-1)%2)
			}
		}
		if extra > 0 {
			assert.Equal(t, "endpoint-0", groups[0][0].Slug)
		}
	}
}

func TestGroupEndpointsEdges(t *testing.T) {
	assert.Nil(t, GroupEndpoints(nil, GroupSize))

	eps := testutil.NewEndpointsBuilder().With("a", "A").With("b", "B").With("c", "C").Build()
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, slugs(GroupEndpoints(eps, 1)))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, slugs(GroupEndpoints(eps, 0)))

	groups := GroupEndpoints(eps, GroupSize)
	groups[0][0].Name = "changed"
	assert.Equal(t, "A", eps[1].Name, "groups must not alias the input")
}

func TestLayoutClass(t *testing.T) {
	assert.Equal(t, "bkap-row", LayoutClass(0))
	assert.Equal(t, "bkap-middle-row", LayoutClass(1))
	assert.Equal(t, "bkap-row", LayoutClass(2))
}

func TestRendererEmbeddedTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	eps := testutil.NewEndpointsBuilder().
		With("a", "A").With("b", "B").With("c", "C").With("d", "D").With("e", "<E>").
		Build()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Compose(eps, "b", models.Vendor{ID: "7"})))
	out := buf.String()

	assert.Equal(t, 3, strings.Count(out, `class="bkap-container-box `))
	assert.Equal(t, 5, strings.Count(out, `class="bkap-feature-box`))
	assert.Equal(t, 1, strings.Count(out, "bkap-middle-row"))
	assert.Equal(t, 2, strings.Count(out, `bkap-container-box bkap-row"`))
	assert.Contains(t, out, `<h2 class="bkap-dashboard-heading">B</h2>`)
	assert.Contains(t, out, `<div class="bkap-feature-box bkap-active"><a href="/vendor/dashboard/b">`)
	assert.Contains(t, out, `<span class="dashicons dashicons-c"></span>`)
	assert.Contains(t, out, "&lt;E&gt;")
	assert.NotContains(t, out, `href="/vendor/dashboard"`, "dashboard link is never rendered in the grid")
}

type recordingTemplate struct {
	name string
	data any
	err  error
}

func (t *recordingTemplate) ExecuteTemplate(w io.Writer, name string, data any) error {
	t.name = name
	t.data = data
	if t.err != nil {
		_, _ = io.WriteString(w, "partial")
		return t.err
	}
	_, err := io.WriteString(w, "ok")
	return err
}

func TestRendererInjectedTemplate(t *testing.T) {
	tmpl := &recordingTemplate{}
	r, err := NewRenderer(WithTemplate(tmpl, "vendor/booking"))
	require.NoError(t, err)

	view := Compose(testutil.NewEndpointsBuilder().With("a", "A").Build(), "a", models.Vendor{ID: "1"})
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, view))

	assert.Equal(t, "ok", buf.String())
	assert.Equal(t, "vendor/booking", tmpl.name)
	assert.Equal(t, view, tmpl.data)
}

func TestRendererFailureWritesNothing(t *testing.T) {
	tmpl := &recordingTemplate{err: errors.New("boom")}
	r, err := NewRenderer(WithTemplate(tmpl, "x"))
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, models.View{}))
	assert.Empty(t, buf.String())
}
