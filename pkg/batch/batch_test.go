package batch

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolkit/pkg/toolio"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestProcessor() (*Processor, *bytes.Buffer) {
	var out bytes.Buffer
	return NewProcessor(toolio.IO{Out: &out, Err: io.Discard}), &out
}

func TestRenameCopiesWithPrefix(t *testing.T) {
	src, dst := t.TempDir(), filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(src, "a.txt"), "hello")
	writeFile(t, filepath.Join(src, "b.csv"), "x,y")

	p, out := newTestProcessor()
	summary, err := p.Process(context.Background(), Request{
		SourceFolder: src, OutputFolder: dst, Operation: "rename", Pattern: "*.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Found: 1, Processed: 1}, summary)

	data, err := os.ReadFile(filepath.Join(dst, "processed_a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.NoFileExists(t, filepath.Join(dst, "processed_b.csv"))

	srcData, err := os.ReadFile(filepath.Join(src, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(srcData))
	assert.Contains(t, out.String(), "✅ Successfully processed: 1 files")
}

func TestRecursiveMatching(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "top.txt"), "1")
	writeFile(t, filepath.Join(src, "sub", "mid.txt"), "2")
	writeFile(t, filepath.Join(src, "sub", "deeper", "low.txt"), "3")
	writeFile(t, filepath.Join(src, "sub", "skip.md"), "4")

	flat, err := Match(src, "*.txt", false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(src, "top.txt")}, flat)

	deep, err := Match(src, "*.txt", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(src, "top.txt"),
		filepath.Join(src, "sub", "mid.txt"),
		filepath.Join(src, "sub", "deeper", "low.txt"),
	}, deep)
}

func TestMatchSkipsDirectories(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(src, "dir.txt"), 0755))
	writeFile(t, filepath.Join(src, "file.txt"), "x")

	files, err := Match(src, "*.txt", false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(src, "file.txt")}, files)
}

func TestConvertUppercasesTextOnly(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "note.txt"), "shout me")
	writeFile(t, filepath.Join(src, "data.csv"), "keep me")

	p, _ := newTestProcessor()
	_, err := p.Process(context.Background(), Request{
		SourceFolder: src, OutputFolder: dst, Operation: "Convert", Pattern: "*",
	})
	require.NoError(t, err)

	note, _ := os.ReadFile(filepath.Join(dst, "note.txt"))
	data, _ := os.ReadFile(filepath.Join(dst, "data.csv"))
	assert.Equal(t, "SHOUT ME", string(note))
	assert.Equal(t, "keep me", string(data))
}

func TestCompressWritesGzip(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "log.txt"), "line\nline\nline\n")

	p, out := newTestProcessor()
	_, err := p.Process(context.Background(), Request{
		SourceFolder: src, OutputFolder: dst, Operation: "compress", Pattern: "*.txt",
	})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dst, "log.txt.gz"))
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "line\nline\nline\n", string(data))
	assert.Equal(t, "log.txt", zr.Name)
	assert.Contains(t, out.String(), "📦")
}

func TestOrganizeByExtension(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.TXT"), "a")
	writeFile(t, filepath.Join(src, "b.jpg"), "b")
	writeFile(t, filepath.Join(src, "Makefile"), "c")

	p, _ := newTestProcessor()
	summary, err := p.Process(context.Background(), Request{
		SourceFolder: src, OutputFolder: dst, Operation: "organize", Pattern: "*",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)

	assert.FileExists(t, filepath.Join(dst, "txt", "a.TXT"))
	assert.FileExists(t, filepath.Join(dst, "jpg", "b.jpg"))
	assert.FileExists(t, filepath.Join(dst, "no_extension", "Makefile"))
}

func TestUnknownOperationSkipsFiles(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "a")

	p, out := newTestProcessor()
	summary, err := p.Process(context.Background(), Request{
		SourceFolder: src, OutputFolder: dst, Operation: "shred", Pattern: "*.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Found: 1, Skipped: 1}, summary)
	assert.Contains(t, out.String(), "⚠️  Unknown operation: shred")
}

func TestMissingSourceFails(t *testing.T) {
	p, _ := newTestProcessor()
	_, err := p.Process(context.Background(), Request{
		SourceFolder: filepath.Join(t.TempDir(), "absent"), OutputFolder: t.TempDir(),
		Operation: "rename", Pattern: "*",
	})
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestNoMatchesIsNotAnError(t *testing.T) {
	p, out := newTestProcessor()
	summary, err := p.Process(context.Background(), Request{
		SourceFolder: t.TempDir(), OutputFolder: t.TempDir(), Operation: "rename", Pattern: "*.none",
	})
	require.NoError(t, err)
	assert.Zero(t, summary.Found)
	assert.Contains(t, out.String(), "No files found matching pattern: *.none")
}
