// Package library lays downloaded episodes out on disk: one folder per work,
// one text file per episode and one file per embedded image.
package library

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/novelpiad/internal/providers"
	"github.com/brogergvhs/novelpiad/internal/util"

	"github.com/spf13/afero"
	"golang.org/x/text/width"
)

var (
	// Full-width forms keep names legal on filesystems that reject the ASCII ones.
	fullWidthColon    = width.Widen.String(":")
	fullWidthQuestion = width.Widen.String("?")
)

type Library struct {
	fs   afero.Afero
	root string
}

func New(fs afero.Fs, root string) *Library {
	if root == "" {
		root = "."
	}

	return &Library{fs: afero.Afero{Fs: fs}, root: root}
}

// NewOs stores under root on the real filesystem.
func NewOs(root string) *Library {
	return New(afero.NewOsFs(), root)
}

func (l *Library) Root() string {
	return l.root
}

// EpisodeFileName is "{number}：{title}.txt" with ASCII question marks widened.
func EpisodeFileName(number, title string) string {
	title = strings.ReplaceAll(title, "?", fullWidthQuestion)
	return number + fullWidthColon + title + ".txt"
}

func ImageFileName(filename string) string {
	return filename + ".jpg"
}

func (l *Library) WorkDir(workTitle string) string {
	return filepath.Join(l.root, workTitle)
}

func (l *Library) TextPath(workTitle, number, title string) string {
	return filepath.Join(l.WorkDir(workTitle), EpisodeFileName(number, title))
}

func (l *Library) ImagePath(workTitle, filename string) string {
	return filepath.Join(l.WorkDir(workTitle), ImageFileName(filename))
}

// checkName rejects scraped names that would leave their folder. Names are
// never rewritten; a bad one fails the write.
func checkName(kind, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %s %q is not a plain file name", providers.ErrUnexpectedMarkup, kind, name)
	}
	return nil
}

func (l *Library) checkPath(workTitle, name string) error {
	if err := checkName("work title", workTitle); err != nil {
		return err
	}
	if err := checkName("file name", name); err != nil {
		return err
	}

	rel, err := filepath.Rel(l.root, filepath.Join(l.WorkDir(workTitle), name))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes the output folder", providers.ErrUnexpectedMarkup, name)
	}
	return nil
}

// SaveText writes the rendered episode, replacing any previous file.
func (l *Library) SaveText(workTitle, number, title string, data []byte) (string, error) {
	if err := l.checkPath(workTitle, EpisodeFileName(number, title)); err != nil {
		return "", fmt.Errorf("save episode text: %w", err)
	}

	path := l.TextPath(workTitle, number, title)
	if err := l.write(workTitle, path, data); err != nil {
		return "", fmt.Errorf("save episode text: %w", err)
	}

	return path, nil
}

// SaveImage writes one image next to the episode texts, replacing any previous file.
func (l *Library) SaveImage(workTitle, filename string, data []byte) (string, error) {
	if err := l.checkPath(workTitle, ImageFileName(filename)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	path := l.ImagePath(workTitle, filename)
	if err := l.write(workTitle, path, data); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return path, nil
}

func (l *Library) TextExists(workTitle, number, title string) (bool, error) {
	if err := l.checkPath(workTitle, EpisodeFileName(number, title)); err != nil {
		return false, err
	}
	return l.fs.Exists(l.TextPath(workTitle, number, title))
}

func (l *Library) write(workTitle, path string, data []byte) error {
	if err := l.fs.MkdirAll(l.WorkDir(workTitle), 0755); err != nil {
		return err
	}

	tmp := path + util.PartSuffix
	if err := l.fs.WriteFile(tmp, data, 0644); err != nil {
		_ = l.fs.Remove(tmp)
		return err
	}

	if err := l.fs.Rename(tmp, path); err != nil {
		_ = l.fs.Remove(tmp)
		return err
	}

	return nil
}
