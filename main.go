package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tend/internal/config"
	"tend/internal/filter"
	"tend/internal/importer"
	"tend/internal/model"
	"tend/internal/remind"
	"tend/internal/storage"
	"tend/internal/store"
	"tend/internal/ui"
)

func main() {
	importPath := flag.String("import", "", "import tasks from a YAML file and exit")
	exportYAML := flag.Bool("export", false, "write tasks as YAML to stdout and exit")
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfgPath := *configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error locating config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	kv, err := storage.Open(cfg.StoragePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	tasks := store.New(kv)

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *importPath, err)
			os.Exit(1)
		}
		n, err := importer.Import(tasks, string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d tasks\n", n)
		return
	}
	if *exportYAML {
		out, err := importer.Export(tasks.Snapshot())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := remind.New(tasks, time.Duration(cfg.ReminderIntervalSecs)*time.Second)

	m := ui.NewModel(tasks,
		filter.ParseMode(cfg.DefaultFilter),
		time.Duration(cfg.NotifyDisplaySecs)*time.Second)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Send runs on the program's own loop, so event callbacks hand off
	// from a fresh goroutine.
	tasks.OnCompleted = func(t model.Task) {
		go p.Send(ui.TaskCompletedMsg(t))
	}
	go sched.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-sched.Notifications():
				p.Send(ui.ReminderMsg(t))
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
