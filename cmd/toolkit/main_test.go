package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolkit/internal/testutil"
	"toolkit/pkg/config"
)

func TestRunMaterializesPlaceholderThenRunsIt(t *testing.T) {
	testutil.RequirePOSIX(t)

	cfg := config.Default()
	cfg.ToolsDir = t.TempDir()
	cfg.Timeout = 10 * time.Second
	cfg.ErrorPause = 0

	answers := "data.csv\nsummary\nHTML\ny\ny\n"
	input := "2\n" + answers + "\n" + "2\n" + answers + "\n" + "0\n"
	var out bytes.Buffer

	code := run(context.Background(), cfg, strings.NewReader(input), &out)
	require.Equal(t, 0, code)

	script := filepath.Join(cfg.ToolsDir, "data_analyzer")
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)

	text := out.String()
	assert.Contains(t, text, "⚠️  Script not found: "+script)
	assert.Contains(t, text, "✅ Success!")
	assert.Contains(t, text, `Received inputs: {"data_file":"data.csv","report_type":"summary","output_format":"HTML","include_charts":true}`)
	assert.Contains(t, text, "Data Report Generator")
	assert.Contains(t, text, "👋 Thanks for using the Automation Toolkit!")
}

func TestRunExitsCleanlyOnInterrupt(t *testing.T) {
	cfg := config.Default()
	cfg.ToolsDir = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := run(ctx, cfg, strings.NewReader(""), &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "👋 Goodbye!")
}

func TestRunReportsBrokenInput(t *testing.T) {
	cfg := config.Default()
	cfg.ToolsDir = t.TempDir()

	var out bytes.Buffer
	code := run(context.Background(), cfg, iotest.ErrReader(errors.New("tty gone")), &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "❌ menu stopped: failed to read input: tty gone")
}
