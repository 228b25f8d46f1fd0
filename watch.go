package ringtext

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bodgit/ringtext/display"
	"github.com/bodgit/ringtext/text"
	"github.com/fsnotify/fsnotify"
)

// ReadFile reads the lines of text held in file
func ReadFile(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return text.ReadLines(f)
}

// Watch shows the text held in file and then shows it again every time the
// file changes, until ctx is cancelled. A file that can't be read or can't
// be rendered is logged and skipped so the last good text stays on screen.
func (p *Pipeline) Watch(ctx context.Context, file string, b display.Blitter) error {
	file, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory as editors tend to replace a file rather than
	// write to it, which loses a watch on the file itself
	if err := w.Add(filepath.Dir(file)); err != nil {
		return err
	}

	show := func() error {
		lines, err := ReadFile(file)
		if err != nil {
			p.logger.Printf("Unable to read \"%s\": %s\n", file, err)
			return nil
		}
		return p.Show(b, lines)
	}

	if err := show(); err != nil {
		p.logger.Printf("Unable to show \"%s\": %s\n", file, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Name != file || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if err := show(); err != nil {
				p.logger.Printf("Unable to show \"%s\": %s\n", file, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
