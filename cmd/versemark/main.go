// Command versemark manages a Bible-study bookmarks file: an XML tree
// of folders and scripture bookmarks, plus a catalog of installed
// SWORD modules used to resolve bookmark references.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Versemark/core/bookmarks"
	"github.com/FocuswithJustin/Versemark/internal/config"
	"github.com/FocuswithJustin/Versemark/internal/logging"
	"github.com/FocuswithJustin/Versemark/internal/registry"
	"github.com/FocuswithJustin/Versemark/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for versemark.
var CLI struct {
	// Global flags
	Config  string `help:"Config file path" type:"path"`
	File    string `short:"f" help:"Bookmarks file path (overrides config)" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	// Command groups (noun-first organization)
	Bookmarks BookmarksGroup `cmd:"" help:"Bookmark tree operations (list, add, sort, export, import)"`
	Modules   ModulesGroup   `cmd:"" help:"Installed module operations"`
	Version   VersionCmd     `cmd:"" help:"Print version information"`
}

// BookmarksGroup contains bookmark tree operations.
type BookmarksGroup struct {
	List      ListCmd      `cmd:"" help:"Print the bookmark tree"`
	Add       AddCmd       `cmd:"" help:"Add a bookmark"`
	AddFolder AddFolderCmd `cmd:"" help:"Add a folder"`
	Sort      SortCmd      `cmd:"" help:"Sort folders by caption"`
	Export    ExportCmd    `cmd:"" help:"Write the bookmarks XML to stdout or a file"`
	Import    ImportCmd    `cmd:"" help:"Append another bookmarks XML file into the tree"`
}

// ModulesGroup contains installed-module operations.
type ModulesGroup struct {
	List ModulesListCmd `cmd:"" help:"List modules in the catalog"`
	Scan ModulesScanCmd `cmd:"" help:"Scan a SWORD directory into the catalog"`
}

// app bundles what every bookmarks command needs.
type app struct {
	cfg      *config.Config
	model    *bookmarks.Model
	store    *store.Store
	resolver bookmarks.Resolver
}

// loadConfig reads the config file named on the command line or at the
// default location.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

// resolvePaths fills the config's empty paths with per-user defaults.
func resolvePaths(cfg *config.Config) error {
	if CLI.File != "" {
		cfg.BookmarksPath = CLI.File
	}
	if cfg.BookmarksPath == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return err
		}
		cfg.BookmarksPath = p
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = strings.TrimSuffix(cfg.BookmarksPath, ".xml") + "-modules.db"
	}
	return nil
}

// openResolver opens the module catalog if one exists; commands work
// without it, with unresolved-module degradation.
func openResolver(cfg *config.Config) bookmarks.Resolver {
	if _, err := os.Stat(cfg.CatalogPath); err != nil {
		return registry.New()
	}
	cat, err := registry.OpenCatalog(cfg.CatalogPath)
	if err != nil {
		logging.Warn("cannot open module catalog", "path", cfg.CatalogPath, "error", err)
		return registry.New()
	}
	reg, err := cat.Load()
	cat.Close()
	if err != nil {
		logging.Warn("cannot load module catalog", "path", cfg.CatalogPath, "error", err)
		return registry.New()
	}
	return reg
}

// openApp loads config, model, and store for a bookmarks command.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := resolvePaths(cfg); err != nil {
		return nil, err
	}

	resolver := openResolver(cfg)
	m := bookmarks.New(
		bookmarks.WithResolver(resolver),
		bookmarks.WithLocale(cfg.DisplayLocale()),
	)
	st := store.New(cfg.BookmarksPath)
	if _, err := st.Load(m, bookmarks.Handle{}); err != nil {
		return nil, err
	}
	return &app{cfg: cfg, model: m, store: st, resolver: resolver}, nil
}

// findFolder walks a "/"-separated caption path from the root,
// returning the zero handle for an empty path (the root itself).
func findFolder(m *bookmarks.Model, path string) (bookmarks.Handle, error) {
	at := bookmarks.Handle{}
	if path == "" {
		return at, nil
	}
	for _, caption := range strings.Split(path, "/") {
		found := false
		for row := 0; row < m.RowCount(at); row++ {
			child := m.Index(row, at)
			if m.IsFolder(child) && m.Data(child, bookmarks.RoleDisplay) == caption {
				at = child
				found = true
				break
			}
		}
		if !found {
			return bookmarks.Handle{}, fmt.Errorf("no folder %q under %q", caption, path)
		}
	}
	return at, nil
}

// ListCmd prints the bookmark tree.
type ListCmd struct {
	Folder string `help:"Only list the folder at this caption path"`
}

func (c *ListCmd) Run() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	root, err := findFolder(a.model, c.Folder)
	if err != nil {
		return err
	}
	printTree(a.model, root, 0)
	return nil
}

func printTree(m *bookmarks.Model, parent bookmarks.Handle, depth int) {
	indent := strings.Repeat("  ", depth)
	for row := 0; row < m.RowCount(parent); row++ {
		h := m.Index(row, parent)
		if m.IsFolder(h) {
			fmt.Printf("%s%s/\n", indent, m.Data(h, bookmarks.RoleDisplay))
			printTree(m, h, depth+1)
			continue
		}
		line := fmt.Sprintf("%s%s (%s)", indent, m.Key(h), m.ModuleName(h))
		if descr := m.Description(h); descr != "" {
			line += "  - " + descr
		}
		fmt.Println(line)
	}
}

// unknownModule stands in for a module name the catalog cannot
// resolve; its key is stored verbatim.
type unknownModule struct{ name string }

func (u unknownModule) Name() string               { return u.name }
func (u unknownModule) Type() bookmarks.ModuleType { return bookmarks.ModuleUnknown }
func (u unknownModule) Description() string        { return "" }

// AddCmd adds a bookmark.
type AddCmd struct {
	Module      string `arg:"" help:"Module name, e.g. KJV"`
	Key         string `arg:"" help:"Reference key, e.g. 'John 3:16'"`
	Description string `short:"d" help:"Free-text description"`
	Title       string `short:"t" help:"Display title"`
	Folder      string `help:"Caption path of the target folder (default: root)"`
}

func (c *AddCmd) Run() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	parent, err := findFolder(a.model, c.Folder)
	if err != nil {
		return err
	}

	var mod bookmarks.Module = unknownModule{name: c.Module}
	if resolved := a.resolver.Lookup(c.Module); resolved != nil {
		mod = resolved
	}

	h := a.model.AddBookmark(-1, parent, mod, c.Key, c.Description, c.Title)
	if !h.IsValid() {
		return fmt.Errorf("cannot add bookmark under %q", c.Folder)
	}
	return a.store.Save(a.model, bookmarks.Handle{})
}

// AddFolderCmd adds a folder.
type AddFolderCmd struct {
	Name   string `arg:"" optional:"" help:"Folder caption (default: 'New folder')"`
	Folder string `help:"Caption path of the parent folder (default: root)"`
}

func (c *AddFolderCmd) Run() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	parent, err := findFolder(a.model, c.Folder)
	if err != nil {
		return err
	}
	h := a.model.AddFolder(a.model.RowCount(parent), parent, c.Name)
	if !h.IsValid() {
		return fmt.Errorf("cannot add folder under %q", c.Folder)
	}
	return a.store.Save(a.model, bookmarks.Handle{})
}

// SortCmd sorts folders by caption.
type SortCmd struct {
	Folder     string `help:"Caption path of the folder to sort (default: whole tree)"`
	Descending bool   `help:"Sort in descending order"`
}

func (c *SortCmd) Run() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	target, err := findFolder(a.model, c.Folder)
	if err != nil {
		return err
	}
	order := bookmarks.Ascending
	if c.Descending {
		order = bookmarks.Descending
	}
	a.model.SortItems(target, order)
	return a.store.Save(a.model, bookmarks.Handle{})
}

// ExportCmd writes the bookmarks XML.
type ExportCmd struct {
	Output string `short:"o" help:"Output file (default: stdout)" type:"path"`
	Folder string `help:"Caption path of the subtree to export (default: whole tree)"`
}

func (c *ExportCmd) Run() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	root, err := findFolder(a.model, c.Folder)
	if err != nil {
		return err
	}
	data := a.model.Serialize(root)
	if c.Output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(c.Output, data, 0o644)
}

// ImportCmd appends another bookmarks file into the tree.
type ImportCmd struct {
	Path   string `arg:"" help:"Bookmarks XML file to import" type:"existingfile"`
	Folder string `help:"Caption path of the target folder (default: root)"`
}

func (c *ImportCmd) Run() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	parent, err := findFolder(a.model, c.Folder)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	ok, err := a.model.LoadDocument(data, parent)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "nothing to import")
		return nil
	}
	return a.store.Save(a.model, bookmarks.Handle{})
}

// ModulesListCmd lists modules in the catalog.
type ModulesListCmd struct{}

func (c *ModulesListCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := resolvePaths(cfg); err != nil {
		return err
	}
	cat, err := registry.OpenCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()
	reg, err := cat.Load()
	if err != nil {
		return err
	}
	for _, m := range reg.Modules() {
		fmt.Printf("%-16s %-10s %-6s %s\n",
			m.Name(), registry.TypeString(m.Type()), m.Language(), m.Description())
	}
	return nil
}

// ModulesScanCmd scans a SWORD directory into the catalog.
type ModulesScanCmd struct {
	Dir string `arg:"" optional:"" help:"SWORD directory (default: from config)" type:"path"`
}

func (c *ModulesScanCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := resolvePaths(cfg); err != nil {
		return err
	}
	dir := c.Dir
	if dir == "" {
		dir = cfg.SwordDir
	}
	if dir == "" {
		return fmt.Errorf("no SWORD directory given and none configured")
	}

	reg, err := registry.LoadSwordDir(dir)
	if err != nil {
		return err
	}
	cat, err := registry.OpenCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()
	if err := cat.Replace(reg.Modules()); err != nil {
		return err
	}
	fmt.Printf("cataloged %d modules from %s\n", reg.Len(), dir)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("versemark version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("versemark"),
		kong.Description("Versemark - Bible-study bookmarks manager"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if CLI.Verbose {
		logging.InitLogger(logging.LevelDebug, logging.FormatText)
	}
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
