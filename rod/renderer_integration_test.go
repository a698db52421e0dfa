//go:build integration

package rod_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pagedTable = `<!DOCTYPE html>
<html><body>
<label>Show <select id="len"><option>10</option><option>25</option><option>All</option></select> entries</label>
<table><thead><tr><th>Date</th><th>Title</th></tr></thead><tbody id="rows"></tbody></table>
<script>
const rows = %s;
function draw(n) {
  const body = document.getElementById('rows');
  body.innerHTML = '';
  rows.slice(0, n).forEach(r => {
    const tr = document.createElement('tr');
    tr.innerHTML = '<td>' + r[0] + '</td><td>' + r[1] + '</td>';
    body.appendChild(tr);
  });
}
draw(10);
document.getElementById('len').addEventListener('change', e => {
  draw(e.target.value === 'All' ? rows.length : parseInt(e.target.value, 10));
});
</script>
</body></html>`

func pagedTableServer(t *testing.T, n int) *httptest.Server {
	t.Helper()

	entries := make([]string, n)
	for i := range entries {
		entries[i] = fmt.Sprintf(`["2024-01-%02d","Notice number %d"]`, i%28+1, i)
	}
	body := fmt.Sprintf(pagedTable, "["+strings.Join(entries, ",")+"]")

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
}

func TestRenderer_Integration_ShowAll(t *testing.T) {
	t.Parallel()

	srv := pagedTableServer(t, 30)
	defer srv.Close()

	html, err := rod.NewRenderer().Render(context.Background(), srv.URL, noticeharvest.RenderOptions{ShowAll: true})
	require.NoError(t, err)

	assert.Equal(t, 30, strings.Count(html, "<tr><td>"))
}

func TestRenderer_Integration_WithoutShowAll(t *testing.T) {
	t.Parallel()

	srv := pagedTableServer(t, 30)
	defer srv.Close()

	html, err := rod.NewRenderer().Render(context.Background(), srv.URL, noticeharvest.RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, 10, strings.Count(html, "<tr><td>"))
}

func TestRenderer_Integration_ShowAllTimeout(t *testing.T) {
	t.Parallel()

	// Too few entries for the table to ever grow past the expansion threshold.
	srv := pagedTableServer(t, 5)
	defer srv.Close()

	var buf bytes.Buffer
	r := rod.NewRenderer(
		rod.WithElementTimeout(500*time.Millisecond),
		rod.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	html, err := r.Render(context.Background(), srv.URL, noticeharvest.RenderOptions{ShowAll: true})
	require.NoError(t, err)

	assert.Equal(t, 5, strings.Count(html, "<tr><td>"))
	assert.Contains(t, buf.String(), `msg="could not show all entries"`)
	assert.Contains(t, buf.String(), "option=All")
}

func TestRenderer_Integration_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rod.NewRenderer().Render(ctx, "http://127.0.0.1:1", noticeharvest.RenderOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
