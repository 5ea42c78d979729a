package scenario

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedFormat is the newest day-file format this build understands.
// Files declaring the same major version are accepted.
const SupportedFormat = "v1.2.0"

// TotalDays is the number of days in a complete course.
const TotalDays = 7

//go:embed content
var builtinContent embed.FS

var dayFilePattern = regexp.MustCompile(`^day(\d+)\.(json|ya?ml)$`)

// Loader reads scenario, tip and menu files from a file system.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewLoader creates a Loader over fsys. A nil logger discards output.
func NewLoader(fsys fs.FS, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{fsys: fsys, logger: logger}
}

// Builtin returns a Loader over the day pack compiled into the binary.
func Builtin(logger *slog.Logger) *Loader {
	sub, err := fs.Sub(builtinContent, "content")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(fmt.Sprintf("builtin scenario content: %v", err))
	}
	return NewLoader(sub, logger)
}

// Dir returns a Loader over a directory on disk.
func Dir(dir string, logger *slog.Logger) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open scenario dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open scenario dir: %s is not a directory", dir)
	}
	return NewLoader(os.DirFS(dir), logger), nil
}

// LoadAll loads every day file. Files that fail to load are logged and
// skipped; ErrNoScenarios is returned if nothing loaded. The result is
// sorted by day number.
func (l *Loader) LoadAll() ([]Scenario, error) {
	files, err := l.dayFiles()
	if err != nil {
		return nil, err
	}

	var scenarios []Scenario
	for _, name := range files {
		sc, err := l.loadDayFile(name)
		if err != nil {
			l.logger.Warn("skipping scenario file", "file", name, "error", err)
			continue
		}
		scenarios = append(scenarios, sc)
	}

	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].DayNumber < scenarios[j].DayNumber
	})
	return scenarios, nil
}

// LoadDay loads the scenario for a single day number.
func (l *Loader) LoadDay(dayNumber int) (Scenario, error) {
	for _, ext := range []string{"json", "yaml", "yml"} {
		name := fmt.Sprintf("day%d.%s", dayNumber, ext)
		if _, err := fs.Stat(l.fsys, name); err != nil {
			continue
		}
		return l.loadDayFile(name)
	}
	return Scenario{}, fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
}

// Validate checks every day file plus the tips and menu files and returns
// one error per invalid file.
func (l *Loader) Validate() []error {
	files, err := l.dayFiles()
	if err != nil {
		return []error{err}
	}

	var errs []error
	seen := make(map[int]string)
	for _, name := range files {
		sc, err := l.loadDayFile(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := seen[sc.DayNumber]; dup {
			errs = append(errs, &ValidationError{
				File: name,
				Err:  fmt.Errorf("day_number %d already declared by %s", sc.DayNumber, prev),
			})
			continue
		}
		seen[sc.DayNumber] = name
	}
	if len(files) == 0 {
		errs = append(errs, ErrNoScenarios)
	}

	if _, err := l.LoadTips(); err != nil && !errors.Is(err, ErrNotFound) {
		errs = append(errs, err)
	}
	if _, err := l.LoadMenu(); err != nil && !errors.Is(err, ErrNotFound) {
		errs = append(errs, err)
	}
	return errs
}

// LoadTips loads the tip catalog.
func (l *Loader) LoadTips() ([]Tip, error) {
	var container struct {
		Tips []Tip `json:"tips"`
	}
	if err := l.decodeNamed("tips", TipsSchema, &container); err != nil {
		return nil, err
	}
	return container.Tips, nil
}

// LoadMenu loads the menu catalog.
func (l *Loader) LoadMenu() ([]MenuItem, error) {
	var container struct {
		Items []MenuItem `json:"items"`
	}
	if err := l.decodeNamed("menu", MenuSchema, &container); err != nil {
		return nil, err
	}
	return container.Items, nil
}

func (l *Loader) dayFiles() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list scenario files: %w", err)
	}
	type dayFile struct {
		name string
		num  int
	}
	var files []dayFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := dayFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		files = append(files, dayFile{name: e.Name(), num: n})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].num < files[j].num })

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names, nil
}

func (l *Loader) loadDayFile(name string) (Scenario, error) {
	var sc Scenario
	if err := l.decodeFile(name, DaySchema, &sc); err != nil {
		return Scenario{}, err
	}
	if err := checkFormat(sc.FormatVersion); err != nil {
		return Scenario{}, &ValidationError{File: name, Err: err}
	}
	if err := checkScenario(sc); err != nil {
		return Scenario{}, &ValidationError{File: name, Err: err}
	}
	return sc, nil
}

// decodeNamed decodes the first of base.json, base.yaml or base.yml.
func (l *Loader) decodeNamed(base string, schema *Schema, out any) error {
	for _, ext := range []string{"json", "yaml", "yml"} {
		name := base + "." + ext
		if _, err := fs.Stat(l.fsys, name); err != nil {
			continue
		}
		return l.decodeFile(name, schema, out)
	}
	return fmt.Errorf("%s: %w", base, ErrNotFound)
}

// decodeFile reads a JSON or YAML file, validates it against schema and
// decodes it into out. YAML is normalized to JSON first so both formats go
// through the same validation path.
func (l *Loader) decodeFile(name string, schema *Schema, out any) error {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if ext := strings.ToLower(path.Ext(name)); ext == ".yaml" || ext == ".yml" {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return &ValidationError{File: name, Err: err}
		}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{File: name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := validate(schema, doc); err != nil {
		return &ValidationError{File: name, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ValidationError{File: name, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert YAML: %w", err)
	}
	return b, nil
}

// checkFormat accepts an empty version (treated as v1) or any valid semver
// sharing the supported major version and not newer than it.
func checkFormat(v string) error {
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("format_version %q: %w", v, ErrUnsupportedFormat)
	}
	if semver.Major(v) != semver.Major(SupportedFormat) || semver.Compare(v, SupportedFormat) > 0 {
		return fmt.Errorf("format_version %s (supported %s): %w", v, SupportedFormat, ErrUnsupportedFormat)
	}
	return nil
}

// checkScenario enforces the structural rules the schema cannot express.
func checkScenario(sc Scenario) error {
	if sc.ID != DayID(sc.DayNumber) {
		return fmt.Errorf("id %q does not match day_number %d (want %q)", sc.ID, sc.DayNumber, DayID(sc.DayNumber))
	}
	stageIDs := make(map[string]bool)
	for _, st := range sc.Stages {
		if stageIDs[st.ID] {
			return fmt.Errorf("duplicate stage id %q", st.ID)
		}
		stageIDs[st.ID] = true
		if !st.Kind.Valid() {
			return fmt.Errorf("stage %s: unknown type %q", st.ID, st.Kind)
		}
		if len(st.Orders) == 0 {
			return fmt.Errorf("stage %s: no orders", st.ID)
		}
		orderIDs := make(map[string]bool)
		for _, o := range st.Orders {
			if orderIDs[o.ID] {
				return fmt.Errorf("stage %s: duplicate order id %q", st.ID, o.ID)
			}
			orderIDs[o.ID] = true
		}
	}
	return nil
}
