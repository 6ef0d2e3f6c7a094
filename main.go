package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"

	"github.com/llehouerou/folio/internal/app"
	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/db"
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/notify"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/stderr"
	"github.com/llehouerou/folio/internal/store"
	"github.com/llehouerou/folio/internal/thumbs"
)

const usage = `usage: folio [command]

commands:
  (none)         browse the portfolio
  dashboard      open on the owner dashboard
  import DIR...  import the images under DIR (default: library.paths)
  list           print the catalogue
`

var errUsage = errors.New("unknown command")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch cmd {
	case "":
		return runTUI(cfg, "")
	case "dashboard":
		return runTUI(cfg, state.ViewDashboard)
	case "import":
		return runImport(cfg, args[1:])
	case "list":
		return runList(cfg, os.Stdout)
	}
	return fmt.Errorf("%w %q", errUsage, cmd)
}

// openCatalogue opens the photo store and the session state on one
// connection. Closing the state manager closes the connection.
func openCatalogue(cfg *config.Config) (*store.Store, *state.Manager, error) {
	conn, err := db.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.Store, err)
	}
	st, err := store.New(conn)
	if err != nil {
		conn.Close()
		return nil, nil, errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	sm, err := state.New(conn)
	if err != nil {
		conn.Close()
		return nil, nil, errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return st, sm, nil
}

func runTUI(cfg *config.Config, view string) error {
	if path := logPath(cfg); path != "" {
		f, err := tea.LogToFile(path, "folio")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	st, sm, err := openCatalogue(cfg)
	if err != nil {
		return err
	}
	defer sm.Close()

	var loader *thumbs.Loader
	if cache, err := thumbs.NewCache(thumbs.DefaultCacheDir()); err != nil {
		log.Printf("thumbnail cache disabled: %v", err)
		loader = thumbs.NewLoader(nil)
	} else {
		loader = thumbs.NewLoader(cache)
	}

	n, err := notify.New()
	if err != nil {
		log.Printf("notifications disabled: %v", err)
	}
	sender := notify.NewSender(n, cfg.Notifications)

	imp := importer.New(st)
	deps := app.Deps{
		Config:      cfg,
		Source:      st,
		Repo:        st,
		Importer:    imp,
		Changes:     st.Subscribe(),
		Loader:      loader,
		Renderer:    thumbs.NewRenderer(thumbs.Detect(cfg.ImageProtocol)),
		State:       sm,
		Notifier:    sender,
		View:        view,
		WatchStderr: true,
	}

	if cfg.Library.Watch && len(cfg.Library.Paths) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w, err := imp.Watch(ctx, cfg.Library.Paths)
		if err != nil {
			log.Printf("%s", errmsg.Format(errmsg.OpImportWatch, err))
		} else {
			defer w.Close()
			deps.Watcher = w
		}
	}

	if err := stderr.Start(); err != nil {
		log.Printf("stderr capture disabled: %v", err)
	}
	defer stderr.Stop()

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func logPath(cfg *config.Config) string {
	if v := os.Getenv(config.EnvLog); v != "" {
		return v
	}
	return cfg.LogFile
}

func runImport(cfg *config.Config, dirs []string) error {
	if len(dirs) == 0 {
		dirs = cfg.Library.Paths
	}
	if len(dirs) == 0 {
		return errors.New("no directory given and library.paths is empty")
	}
	for i, d := range dirs {
		if expanded, err := homedir.Expand(d); err == nil {
			dirs[i] = expanded
		}
	}

	st, sm, err := openCatalogue(cfg)
	if err != nil {
		return err
	}
	defer sm.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	faint := color.New(color.Faint)
	progress := make(chan importer.Progress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			if p.Phase == "reading" && p.CurrentFile != "" {
				faint.Printf("[%d/%d] %s\n", p.Current, p.Total, p.CurrentFile)
			}
		}
	}()

	res, err := importer.New(st).Import(ctx, dirs, progress)
	<-done
	for _, f := range res.Failed {
		color.Red("  %s: %v", f.Path, f.Err)
	}
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpImportDir, strings.Join(dirs, ", "), err))
	}
	color.Green("%s", res.Summary())
	return nil
}

func runList(cfg *config.Config, w io.Writer) error {
	st, sm, err := openCatalogue(cfg)
	if err != nil {
		return err
	}
	defer sm.Close()

	items, err := st.ListAll(context.Background())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpGalleryLoad, err))
	}
	printCatalogue(w, items)
	return nil
}

// printCatalogue writes one line per photo: flags, category, title, size and
// path. Featured photos are yellow, hidden ones faint.
func printCatalogue(w io.Writer, items []photo.Item) {
	featured := color.New(color.FgYellow, color.Bold)
	hidden := color.New(color.Faint)
	category := color.New(color.FgCyan)

	for _, it := range items {
		flags := "  "
		if it.Featured {
			flags = "★ "
		}
		if it.Hidden {
			flags = "◌ "
		}
		line := flags + category.Sprintf("%-10s", photo.NormalizeCategory(it.Category)) + " " + it.DisplayTitle()
		if it.Size > 0 {
			line += "  " + humanize.Bytes(uint64(it.Size)) //nolint:gosec // size is positive
		}
		line += "  " + it.Path
		switch {
		case it.Hidden:
			hidden.Fprintln(w, line)
		case it.Featured:
			featured.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "%s photos\n", humanize.Comma(int64(len(items))))
}
