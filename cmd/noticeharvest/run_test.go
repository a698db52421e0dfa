package main_test

import (
	"bytes"
	"context"
	"errors"
	"path"
	"testing"

	"github.com/fwojciec/noticeharvest"
	main "github.com/fwojciec/noticeharvest/cmd/noticeharvest"
	"github.com/fwojciec/noticeharvest/goquery"
	"github.com/fwojciec/noticeharvest/harvest"
	"github.com/fwojciec/noticeharvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertListing = `<html><body><table id="tablepress-3">
<thead><tr><th>Date Issued</th><th>Alert Title</th></tr></thead>
<tbody>
<tr><td>3 February 2024</td><td>Unregistered Slimming Tea</td></tr>
<tr><td>4 February 2024</td><td>n/a</td></tr>
</tbody>
</table></body></html>`

// newTestHarvester returns a Harvester over in-memory fakes whose renderer
// serves pages by URL.
func newTestHarvester(pages map[string]string, rendered *[]string) *harvest.Harvester {
	return &harvest.Harvester{
		Renderer: &mock.Renderer{
			RenderFn: func(_ context.Context, url string, _ noticeharvest.RenderOptions) (string, error) {
				*rendered = append(*rendered, url)
				html, ok := pages[url]
				if !ok {
					return "", errors.New("navigation failed")
				}
				return html, nil
			},
		},
		Locator:  goquery.NewTableLocator(),
		Resolver: goquery.NewRowResolver(),
		Details:  goquery.NewDetailExtractor(),
		Documents: &mock.DocumentRenderer{
			RenderFn: func(string, *noticeharvest.FieldMap, string, string) error { return nil },
		},
		Artifacts: &mock.ArtifactStore{
			LocateFn: func(tmpl noticeharvest.Template, group, filename string) (string, error) {
				return path.Join(tmpl.Dir, noticeharvest.SanitizeFilename(group), filename), nil
			},
		},
		Records: &mock.RecordService{
			CreateRecordFn: func(_ context.Context, rec *noticeharvest.Record) error {
				rec.ID = 1
				return nil
			},
		},
		RunID: "run-42",
	}
}

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs selected templates with URL overrides", func(t *testing.T) {
		t.Parallel()

		var rendered []string
		h := newTestHarvester(map[string]string{"https://example.com/alerts/": alertListing}, &rendered)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Harvester: h,
		}

		cmd := &main.RunCmd{Template: []string{"alerts"}, AlertsURL: "https://example.com/alerts/"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Equal(t, []string{"https://example.com/alerts/"}, rendered)
		out := stdout.String()
		assert.Contains(t, out, "alerts: found 2 rows")
		assert.Contains(t, out, "alerts: 2 rows, 1 records (1 fallback), 1 skipped, 0 not stored, 0 failed")
		assert.Contains(t, out, "run run-42 finished")
	})

	t.Run("structural failure does not stop other templates", func(t *testing.T) {
		t.Parallel()

		var rendered []string
		h := newTestHarvester(map[string]string{"https://example.com/alerts/": alertListing}, &rendered)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Harvester: h,
		}

		cmd := &main.RunCmd{
			Template:   []string{"recalls", "alerts"},
			RecallsURL: "https://example.com/recalls/",
			AlertsURL:  "https://example.com/alerts/",
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Equal(t, []string{"https://example.com/recalls/", "https://example.com/alerts/"}, rendered)
		assert.Contains(t, stderr.String(), "navigation failed")
		assert.Contains(t, stdout.String(), "alerts: 2 rows, 1 records")
		assert.Contains(t, stdout.String(), "(1 of 2 templates incomplete)")
	})

	t.Run("rejects unknown template", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		err := (&main.RunCmd{Template: []string{"bulletins"}}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, noticeharvest.EINVALID, noticeharvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unknown template")
	})
}
