package gitstats

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Pattern counts the lines of source files matching Regexp.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

// DefaultPatterns count tests, TODO markers and function declarations
// across Go, TypeScript, JavaScript, Svelte and Python sources.
var DefaultPatterns = []Pattern{
	{Name: "tests", Regexp: regexp.MustCompile(`^\s*(func Test\w*\(|(it|test|describe)\(\s*['"` + "`" + `]|def test_)`)},
	{Name: "todos", Regexp: regexp.MustCompile(`\b(TODO|FIXME|XXX)\b`)},
	{Name: "functions", Regexp: regexp.MustCompile(`^\s*(func\s|(export\s+)?(async\s+)?function\b|def\s+\w+\()`)},
}

// DefaultExtensions are the source files counted.
var DefaultExtensions = []string{".go", ".ts", ".js", ".svelte", ".py", ".templ"}

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
}

// ExtensionStats are per-extension totals.
type ExtensionStats struct {
	Extension string `json:"extension"`
	Files     int    `json:"files"`
	Lines     int    `json:"lines"`
}

// SourceStats is the result of a source walk.
type SourceStats struct {
	Files      int              `json:"files"`
	Lines      int              `json:"lines"`
	Matches    map[string]int   `json:"matches"`
	Extensions []ExtensionStats `json:"extensions"`
}

// SourceCounter walks a tree and counts lines and pattern matches.
type SourceCounter struct {
	fs         afero.Fs
	patterns   []Pattern
	extensions map[string]bool
}

// NewSourceCounter creates a counter over fs. Nil patterns or extensions
// select the defaults.
func NewSourceCounter(fs afero.Fs, patterns []Pattern, extensions []string) *SourceCounter {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	if extensions == nil {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &SourceCounter{fs: fs, patterns: patterns, extensions: exts}
}

// Count walks root.
func (s *SourceCounter) Count(root string) (*SourceStats, error) {
	stats := &SourceStats{Matches: make(map[string]int, len(s.patterns))}
	for _, p := range s.patterns {
		stats.Matches[p.Name] = 0
	}
	byExt := make(map[string]*ExtensionStats)

	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !s.extensions[ext] {
			return nil
		}
		lines, err := s.countFile(path, stats.Matches)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Lines += lines
		es, ok := byExt[ext]
		if !ok {
			es = &ExtensionStats{Extension: ext}
			byExt[ext] = es
		}
		es.Files++
		es.Lines += lines
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, es := range byExt {
		stats.Extensions = append(stats.Extensions, *es)
	}
	sort.Slice(stats.Extensions, func(i, j int) bool {
		if stats.Extensions[i].Lines != stats.Extensions[j].Lines {
			return stats.Extensions[i].Lines > stats.Extensions[j].Lines
		}
		return stats.Extensions[i].Extension < stats.Extensions[j].Extension
	})
	return stats, nil
}

// maxMatchedLine bounds the prefix of a line handed to the patterns.
// Longer lines, such as minified bundles, are still counted.
const maxMatchedLine = 64 * 1024

func (s *SourceCounter) countFile(path string, matches map[string]int) (int, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	r := bufio.NewReader(f)
	var line []byte
	pending := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return lines, err
		}
		pending = true
		if room := maxMatchedLine - len(line); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			line = append(line, chunk...)
		}
		if isPrefix {
			continue
		}
		lines++
		s.match(line, matches)
		line, pending = line[:0], false
	}
	if pending {
		lines++
		s.match(line, matches)
	}
	return lines, nil
}

func (s *SourceCounter) match(line []byte, matches map[string]int) {
	for _, p := range s.patterns {
		if p.Regexp.Match(line) {
			matches[p.Name]++
		}
	}
}
