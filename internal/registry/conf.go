package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Versemark/core/bookmarks"
	"github.com/FocuswithJustin/Versemark/core/errors"
	"github.com/FocuswithJustin/Versemark/internal/logging"
)

// confFile is a parsed SWORD .conf file.
type confFile struct {
	Lines []confLine `@@*`
}

// confLine is a single meaningful line in a conf file.
type confLine struct {
	Section  string `  @Section`
	Property string `| @Property`
}

// confLexer tokenizes SWORD .conf files line by line. Order matters:
// more specific patterns come first.
var confLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comment lines (full line starting with #)
	{Name: "Comment", Pattern: `#[^\r\n]*`},
	// Section header line: [ModuleName]
	{Name: "Section", Pattern: `\[[^\]\r\n]+\]`},
	// Property line: Key=Value (keys can contain letters, digits,
	// underscores, dots, e.g. History_1.0=)
	{Name: "Property", Pattern: `[a-zA-Z][a-zA-Z0-9_.]*=[^\r\n]*`},
	// RTF-escape continuation lines and other noise we ignore
	{Name: "Continuation", Pattern: `\\[^\r\n]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Newline", Pattern: `[\r\n]+`},
})

var confParser = participle.MustBuild[confFile](
	participle.Lexer(confLexer),
	participle.Elide("Comment", "Whitespace", "Newline", "Continuation"),
)

// driverType maps a SWORD ModDrv value to a module type.
func driverType(driver string) bookmarks.ModuleType {
	switch driver {
	case "zText", "zText4", "RawText", "RawText4":
		return bookmarks.ModuleBible
	case "zCom", "zCom4", "RawCom", "RawCom4":
		return bookmarks.ModuleCommentary
	case "zLD", "RawLD", "RawLD4":
		return bookmarks.ModuleLexicon
	case "RawGenBook":
		return bookmarks.ModuleGenericBook
	}
	return bookmarks.ModuleUnknown
}

// ParseConf parses a SWORD .conf document into a module record.
func ParseConf(data []byte) (*Module, error) {
	cf, err := confParser.ParseBytes("", data)
	if err != nil {
		return nil, errors.NewParse("conf", "", err.Error())
	}

	m := &Module{}
	for _, line := range cf.Lines {
		if line.Section != "" {
			name := strings.TrimPrefix(line.Section, "[")
			name = strings.TrimSuffix(name, "]")
			if m.name == "" {
				m.name = name
			}
			continue
		}
		if line.Property == "" {
			continue
		}
		idx := strings.Index(line.Property, "=")
		if idx < 0 {
			continue
		}
		key := line.Property[:idx]
		value := strings.TrimSpace(line.Property[idx+1:])
		switch key {
		case "Description":
			m.description = value
		case "ModDrv":
			m.typ = driverType(value)
		case "Lang":
			m.language = value
		}
	}
	if m.name == "" {
		return nil, errors.NewValidation("conf", "missing module section header")
	}
	return m, nil
}

// ParseConfFile parses one .conf file from disk.
func ParseConfFile(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read conf", path, err)
	}
	return ParseConf(data)
}

// DiscoverConfs lists the .conf files in a SWORD directory's mods.d
// subdirectory.
func DiscoverConfs(swordDir string) ([]string, error) {
	modsDir := filepath.Join(swordDir, "mods.d")
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, errors.NewIO("read mods.d", modsDir, err)
	}
	var confs []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".conf") {
			confs = append(confs, filepath.Join(modsDir, entry.Name()))
		}
	}
	return confs, nil
}

// LoadSwordDir builds a registry from every parseable .conf in a SWORD
// directory. A conf that fails to parse is logged and skipped; other
// modules still load.
func LoadSwordDir(swordDir string) (*Registry, error) {
	confs, err := DiscoverConfs(swordDir)
	if err != nil {
		return nil, err
	}
	r := New()
	for _, path := range confs {
		m, err := ParseConfFile(path)
		if err != nil {
			logging.Warn("skipping unparseable conf", "path", path, "error", err)
			continue
		}
		r.Add(m)
	}
	logging.RegistryEvent("sword scan", r.Len())
	return r, nil
}
