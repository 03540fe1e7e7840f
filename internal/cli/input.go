package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

// stdinName stands for standard input in the list of input files.
const stdinName = "-"

// openInput opens path for reading, decompressing .gz files on the fly.
func openInput(path string) (io.ReadCloser, error) {
	if path == stdinName {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	gr, err := pgzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &gzipFile{Reader: gr, file: f}, nil
}

type gzipFile struct {
	*pgzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// readDocument reads one input into a document. With titleLine set, the
// first non-blank line becomes the title section.
func readDocument(tok tokenize.Tokenizer, path string, titleLine bool) (*data.Document, error) {
	rc, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	body := string(raw)
	title := ""
	if titleLine {
		title, body = splitTitle(body)
	}

	meta := data.Metadata{Source: "file", FilePath: path}
	if path == stdinName {
		meta.Source = "stdin"
		meta.FilePath = ""
	} else if title == "" {
		meta.Title = strings.TrimSuffix(filepath.Base(path), ".gz")
	}
	return tokenize.BuildDocument(tok, meta, title, body)
}

func splitTitle(text string) (title, body string) {
	text = strings.TrimLeft(text, " \t\r\n")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSpace(text[:i]), text[i+1:]
	}
	return strings.TrimSpace(text), ""
}
