package vehicle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/cache"
	"github.com/rshade/footprint/internal/lookup"
)

func menuXML(values ...string) string {
	out := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><menuItems>`
	for _, v := range values {
		out += fmt.Sprintf("<menuItem><text>%s</text><value>%s</value></menuItem>", v, v)
	}
	return out + "</menuItems>"
}

// fakeMenuServer serves year/make/model menus and counts requests.
func fakeMenuServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/menu/year", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, menuXML("2024", "2023"))
	})
	mux.HandleFunc("/menu/make", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("year") != "2022" {
			http.Error(w, "no data", http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprint(w, menuXML("Honda", "Land Rover", "Toyota"))
	})
	mux.HandleFunc("/menu/model", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Query().Get("make") {
		case "Honda":
			_, _ = fmt.Fprint(w, menuXML("Civic", "Accord"))
		case "Land Rover":
			_, _ = fmt.Fprint(w, menuXML("Defender"))
		case "Toyota":
			_, _ = fmt.Fprint(w, menuXML("Prius"))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(t *testing.T, baseURL string, store *cache.FileStore) *Client {
	t.Helper()
	return NewClient(baseURL+"/menu/", lookup.NewClient(lookup.Options{Service: "vehicle"}), store)
}

func TestClient_Menus(t *testing.T) {
	srv, _ := fakeMenuServer(t)
	c := newTestClient(t, srv.URL, nil)
	ctx := context.Background()

	years, err := c.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Option{{Text: "2024", Value: "2024"}, {Text: "2023", Value: "2023"}}, years)

	makes, err := c.Makes(ctx, "2022")
	require.NoError(t, err)
	require.Len(t, makes, 3)
	assert.Equal(t, "Land Rover", makes[1].Value)

	models, err := c.Models(ctx, "2022", "Land Rover")
	require.NoError(t, err, "make names with spaces are query-escaped")
	assert.Equal(t, []Option{{Text: "Defender", Value: "Defender"}}, models)
}

func TestClient_MissingSelection(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", nil)

	_, err := c.Makes(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingSelection)

	_, err = c.Models(context.Background(), "2022", "")
	require.ErrorIs(t, err, ErrMissingSelection)

	_, err = c.Options(context.Background(), Field(9), Selection{})
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestClient_UpstreamError(t *testing.T) {
	srv, _ := fakeMenuServer(t)
	c := newTestClient(t, srv.URL, nil)

	_, err := c.Makes(context.Background(), "1901")
	require.ErrorIs(t, err, lookup.ErrUpstream)
}

func TestClient_MalformedMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "<html>maintenance")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, lookup.NewClient(lookup.Options{}), nil)
	_, err := c.Years(context.Background())
	require.ErrorIs(t, err, ErrMalformed)
}

func TestClient_CachesResults(t *testing.T) {
	srv, hits := fakeMenuServer(t)
	store, err := cache.NewFileStore(t.TempDir(), 60)
	require.NoError(t, err)
	c := newTestClient(t, srv.URL, store)

	first, err := c.Years(context.Background())
	require.NoError(t, err)
	second, err := c.Years(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Catalog(t *testing.T) {
	srv, _ := fakeMenuServer(t)
	c := newTestClient(t, srv.URL, nil)

	catalog, err := c.Catalog(context.Background(), "2022")
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.Len(t, catalog["Honda"], 2)
	assert.Equal(t, "Prius", catalog["Toyota"][0].Value)
}

func TestParseMenu(t *testing.T) {
	opts, err := parseMenu([]byte(`<menuItems>
		<menuItem><text> Civic 2WD </text><value>Civic 2WD</value></menuItem>
		<menuItem><text></text><value>Accord</value></menuItem>
		<menuItem><text>blank</text><value> </value></menuItem>
	</menuItems>`))
	require.NoError(t, err)
	assert.Equal(t, []Option{
		{Text: "Civic 2WD", Value: "Civic 2WD"},
		{Text: "Accord", Value: "Accord"},
	}, opts)

	opts, err = parseMenu([]byte(`<menuItems></menuItems>`))
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestParseField(t *testing.T) {
	for in, want := range map[string]Field{"year": FieldYear, "Years": FieldYear, "make": FieldMake, "models": FieldModel} {
		got, err := ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseField("colour")
	require.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "Field(7)", Field(7).String())
}
