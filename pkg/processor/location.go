package processor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/espinet/byebug/pkg/iface"
)

// canonicFile renders a path the way the basename option asks for: the bare
// filename, or the normalized absolute path.
func (p *CommandProcessor) canonicFile(file string) string {
	if file == "" || syntheticFile(file) {
		return file
	}
	if p.settings.Basename {
		return filepath.Base(file)
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.Clean(file)
	}
	return abs
}

// syntheticFile reports whether file names an inline source like "(eval)"
// rather than something on disk.
func syntheticFile(file string) bool {
	return strings.HasPrefix(file, "(") && strings.HasSuffix(file, ")")
}

func (p *CommandProcessor) printLocation(out iface.Interface, file string, line int) {
	out.Print("%s:%d\n", p.canonicFile(file), line)
	if syntheticFile(file) {
		return
	}
	if text, ok := p.sourceLine(file, line); ok {
		out.Print("%s\n", text)
	}
}

func (p *CommandProcessor) sourceLine(file string, line int) (string, bool) {
	if p.SourceLine != nil {
		return p.SourceLine(file, line)
	}
	return fileSourceLine(file, line)
}

// fileSourceLine is the default source reader: a direct on-demand file read.
func fileSourceLine(file string, line int) (string, bool) {
	if line < 1 || syntheticFile(file) {
		return "", false
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}
