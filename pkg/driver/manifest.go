package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest looked up by FindManifest.
const ManifestFileName = "naja.yml"

// Manifest represents the parsed contents of naja.yml.
type Manifest struct {
	Path    string
	Dir     string
	Name    string
	Version string
	Entry   string
	Trace   string

	// ModulePaths are search roots, made absolute relative to Dir.
	ModulePaths []string
	// Modules maps import names to explicit files.
	Modules map[string]string
	// GitSources keep manifest order; a source's modules are imported as
	// "<source>/<path>".
	GitSources []*GitSource
	Preload    []string
}

// GitSource describes a git repository serving modules from a fixed revision.
type GitSource struct {
	Name   string
	Repo   string
	Rev    string
	Tag    string
	Branch string
	Dir    string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ErrNoManifest is returned by FindManifest when no naja.yml exists in the
// directory or any parent.
var ErrNoManifest = errors.New("manifest: no " + ManifestFileName + " found")

// FindManifest walks up from dir looking for naja.yml.
func FindManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoManifest
		}
		abs = parent
	}
}

// LoadManifest parses naja.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeManifest(file, absPath)
}

func decodeManifest(r io.Reader, absPath string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	tracer().Debugf("manifest %s: %d module paths, %d git sources", absPath, len(manifest.ModulePaths), len(manifest.GitSources))
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Version != "" && !semver.IsValid("v"+strings.TrimPrefix(m.Version, "v")) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("version %q is not a semantic version", m.Version))
	}
	switch strings.ToLower(m.Trace) {
	case "", "debug", "info", "error":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("trace level %q must be one of debug, info, error", m.Trace))
	}
	for name, file := range m.Modules {
		if file == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("modules.%s must name a file", name))
		}
	}
	seen := make(map[string]struct{}, len(m.GitSources))
	for _, src := range m.GitSources {
		if _, dup := seen[src.Name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("git source %q declared twice", src.Name))
		}
		seen[src.Name] = struct{}{}
		for _, issue := range src.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("git_sources.%s: %s", src.Name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (g *GitSource) validate() []string {
	var errs []string
	if g.Repo == "" {
		errs = append(errs, "repo must be provided")
	}
	pinned := 0
	for _, v := range []string{g.Rev, g.Tag, g.Branch} {
		if v != "" {
			pinned++
		}
	}
	if pinned > 1 {
		errs = append(errs, "only one of rev, tag or branch may be given")
	}
	if strings.Contains(g.Name, "/") {
		errs = append(errs, "source names must not contain '/'")
	}
	return errs
}

type manifestFile struct {
	Name        string            `yaml:"name"`
	Version     string            `yaml:"version"`
	Entry       string            `yaml:"entry"`
	Trace       string            `yaml:"trace"`
	ModulePaths stringList        `yaml:"module_paths"`
	Modules     map[string]string `yaml:"modules"`
	GitSources  gitSourceMap      `yaml:"git_sources"`
	Preload     stringList        `yaml:"preload"`
}

type gitSourceYAML struct {
	Repo   string `yaml:"repo"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Dir    string `yaml:"dir"`
}

// gitSourceMap keeps the mapping order of git_sources.
type gitSourceMap struct {
	items []*GitSource
}

func (gm *gitSourceMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		gm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: git_sources must be a mapping")
	}
	items := make([]*GitSource, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: git_sources must not use empty keys")
		}
		valueNode := value.Content[i+1]
		var raw gitSourceYAML
		if valueNode.Kind == yaml.ScalarNode {
			// shorthand: name: <repo>
			raw.Repo = valueNode.Value
		} else if err := valueNode.Decode(&raw); err != nil {
			return fmt.Errorf("manifest: git source %q: %w", key, err)
		}
		items = append(items, &GitSource{
			Name:   key,
			Repo:   strings.TrimSpace(raw.Repo),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Dir:    strings.Trim(strings.TrimSpace(raw.Dir), "/"),
		})
	}
	gm.items = items
	return nil
}

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	dir := filepath.Dir(path)
	result := &Manifest{
		Path:    path,
		Dir:     dir,
		Name:    strings.TrimSpace(mf.Name),
		Version: strings.TrimSpace(mf.Version),
		Trace:   strings.TrimSpace(mf.Trace),
		Modules: make(map[string]string, len(mf.Modules)),
		Preload: mf.Preload.Clone(),
	}
	if entry := strings.TrimSpace(mf.Entry); entry != "" {
		result.Entry = resolvePath(dir, entry)
	}
	for _, root := range mf.ModulePaths.Clone() {
		result.ModulePaths = append(result.ModulePaths, resolvePath(dir, root))
	}
	for name, file := range mf.Modules {
		name = strings.TrimSpace(name)
		file = strings.TrimSpace(file)
		if file != "" {
			file = resolvePath(dir, file)
		}
		result.Modules[name] = file
	}
	for _, src := range mf.GitSources.items {
		if isLocalRepo(src.Repo) {
			src.Repo = resolvePath(dir, src.Repo)
		}
		result.GitSources = append(result.GitSources, src)
	}
	return result
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// isLocalRepo reports whether repo names a filesystem path rather than a URL.
func isLocalRepo(repo string) bool {
	if repo == "" {
		return false
	}
	if strings.Contains(repo, "://") {
		return false
	}
	// scp-like syntax: git@host:path
	if at := strings.Index(repo, "@"); at >= 0 && strings.Contains(repo[at:], ":") {
		return false
	}
	return true
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}
