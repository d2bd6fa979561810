// Package batch applies one file operation to every file matching a glob
// pattern under a source folder.
package batch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"

	"toolkit/pkg/config"
	"toolkit/pkg/logx"
	"toolkit/pkg/toolio"
)

// ErrSourceMissing is returned when the source folder does not exist.
var ErrSourceMissing = errors.New("source folder doesn't exist")

// Operation names a per-file transformation.
type Operation string

// Supported operations.
const (
	Rename   Operation = "rename"
	Convert  Operation = "convert"
	Compress Operation = "compress"
	Organize Operation = "organize"
)

const noExtensionDir = "no_extension"

// Request is the decoded tool input.
type Request struct {
	SourceFolder string `json:"source_folder"`
	OutputFolder string `json:"output_folder"`
	Operation    string `json:"operation"`
	Pattern      string `json:"pattern"`
	Recursive    bool   `json:"recursive"`
}

// Summary counts what a run did.
type Summary struct {
	Found     int
	Processed int
	Skipped   int
	Failed    int
}

// Processor runs batch requests.
type Processor struct {
	streams toolio.IO
	logger  *logx.Logger
}

// NewProcessor creates a processor reporting on streams.
func NewProcessor(streams toolio.IO) *Processor {
	return &Processor{streams: streams, logger: logx.NewLogger("file_processor")}
}

// Process matches req.Pattern under req.SourceFolder and applies the
// operation to each match, writing results flat into req.OutputFolder.
// Per-file failures are counted, not returned.
func (p *Processor) Process(ctx context.Context, req Request) (Summary, error) {
	var summary Summary
	op := Operation(strings.ToLower(strings.TrimSpace(req.Operation)))

	recursive := "No"
	if req.Recursive {
		recursive = "Yes"
	}
	p.streams.Printf("🔍 Scanning for files: %s\n", req.Pattern)
	p.streams.Printf("📁 Source: %s\n", req.SourceFolder)
	p.streams.Printf("📁 Output: %s\n", req.OutputFolder)
	p.streams.Printf("🔄 Operation: %s\n", op)
	p.streams.Printf("📂 Recursive: %s\n", recursive)
	p.streams.Printf("%s\n", strings.Repeat("-", 50))

	if info, err := os.Stat(req.SourceFolder); err != nil || !info.IsDir() {
		return summary, fmt.Errorf("%w: %s", ErrSourceMissing, req.SourceFolder)
	}
	if err := os.MkdirAll(req.OutputFolder, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output folder: %w", err)
	}

	files, err := Match(req.SourceFolder, req.Pattern, req.Recursive)
	if err != nil {
		return summary, err
	}
	summary.Found = len(files)
	if len(files) == 0 {
		p.streams.Printf("⚠️  No files found matching pattern: %s\n", req.Pattern)
		return summary, nil
	}
	p.streams.Printf("📊 Found %d files to process\n", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("processing interrupted: %w", err)
		}

		p.streams.Printf("🔧 Processing: %s\n", filepath.Base(file))
		done, err := p.apply(op, file, req.OutputFolder)
		switch {
		case err != nil:
			summary.Failed++
			p.logger.Debug("%s %s failed: %v", op, file, err)
			p.streams.Printf("   ❌ Error: %v\n", err)
		case !done:
			summary.Skipped++
			p.streams.Printf("   ⚠️  Unknown operation: %s\n", op)
		default:
			summary.Processed++
			p.streams.Printf("   ✅ Done\n")
		}
	}

	p.streams.Printf("%s\n", strings.Repeat("-", 50))
	p.streams.Printf("📊 Processing Summary:\n")
	p.streams.Printf("   ✅ Successfully processed: %d files\n", summary.Processed)
	if summary.Failed > 0 {
		p.streams.Printf("   ❌ Errors encountered: %d files\n", summary.Failed)
	}
	p.streams.Printf("   📁 Output location: %s\n", req.OutputFolder)
	return summary, nil
}

// Match returns the regular files under root matching pattern, sorted.
// With recursive set the pattern is matched at any depth.
func Match(root, pattern string, recursive bool) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if recursive {
		pattern = path.Join("**", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to match %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(m)))
	}
	slices.Sort(files)
	return files, nil
}

func (p *Processor) apply(op Operation, src, outDir string) (bool, error) {
	name := filepath.Base(src)
	switch op {
	case Rename:
		return true, copyFile(src, filepath.Join(outDir, config.ProcessedPrefix+name))
	case Convert:
		if strings.HasSuffix(name, ".txt") {
			return true, upperCopy(src, filepath.Join(outDir, name))
		}
		return true, copyFile(src, filepath.Join(outDir, name))
	case Compress:
		return true, p.gzipFile(src, filepath.Join(outDir, name+".gz"))
	case Organize:
		dir := noExtensionDir
		if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
			dir = ext[1:]
		}
		target := filepath.Join(outDir, dir)
		if err := os.MkdirAll(target, 0755); err != nil {
			return true, fmt.Errorf("failed to create %s: %w", target, err)
		}
		return true, copyFile(src, filepath.Join(target, name))
	default:
		return false, nil
	}
}

// copyFile copies src to dst keeping its permission bits and mtime.
func copyFile(src, dst string) error {
	return transform(src, dst, func(w io.Writer, r io.Reader) error {
		_, err := io.Copy(w, r)
		return err
	})
}

func upperCopy(src, dst string) error {
	return transform(src, dst, func(w io.Writer, r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, strings.ToUpper(string(data)))
		return err
	})
}

func (p *Processor) gzipFile(src, dst string) error {
	var in, out int64
	err := transform(src, dst, func(w io.Writer, r io.Reader) error {
		counter := &countingWriter{w: w}
		zw := gzip.NewWriter(counter)
		zw.Name = filepath.Base(src)
		n, err := io.Copy(zw, r)
		if err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		in, out = n, counter.n
		return nil
	})
	if err != nil {
		return err
	}
	p.streams.Printf("   📦 %s → %s\n", humanize.Bytes(uint64(in)), humanize.Bytes(uint64(out)))
	return nil
}

func transform(src, dst string, fn func(w io.Writer, r io.Reader) error) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dst, cerr)
		}
		if err == nil {
			_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
		}
	}()

	if err := fn(out, in); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
