// Command pubrank ranks academic departments by publication output. It loads
// the freshest data file in a directory (SQLite, CSV, or JSONL), runs the
// ranking pass for the requested filter, and renders the result as a
// terminal table, TSV, markdown report, chart file, JSON for automation, or
// an interactive browser.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	json "github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/pubrank/internal/config"
	"github.com/Dicklesworthstone/pubrank/internal/datasource"
	"github.com/Dicklesworthstone/pubrank/internal/export"
	"github.com/Dicklesworthstone/pubrank/internal/prefs"
	"github.com/Dicklesworthstone/pubrank/internal/render"
	"github.com/Dicklesworthstone/pubrank/internal/ui"
	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
	"github.com/Dicklesworthstone/pubrank/pkg/region"
	"github.com/Dicklesworthstone/pubrank/pkg/summary"
	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pubrank:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "pubrank.yaml", "config file path")
		dataDir    = flag.String("data", "", "data directory (overrides config)")
		fromYear   = flag.Int("from", 0, "first counted year, inclusive")
		toYear     = flag.Int("to", 0, "last counted year, inclusive")
		regionFlag = flag.String("region", "", "region filter (world, us, europe, ... or 2-letter country code)")
		areasFlag  = flag.String("areas", "", "comma-separated area codes or a preset (all, ai-group, systems, theory, interdisciplinary)")
		minShow    = flag.Int("min", 0, "minimum number of ranked rows to show")
		dense      = flag.Bool("dense", false, "dense rank numbering instead of competition")
		verbose    = flag.Bool("verbose", false, "log data loading and filtering diagnostics")

		robotRank  = flag.Bool("robot-rank", false, "print the ranking as JSON and exit")
		robotAreas = flag.Bool("robot-areas", false, "print the area taxonomy as JSON and exit")
		tsv        = flag.Bool("tsv", false, "print the ranking as tab-separated values")
		report     = flag.Bool("report", false, "print a markdown report")
		exportSVG  = flag.String("export-svg", "", "write an SVG bar chart to this path")
		exportPie  = flag.String("export-pie", "", "write a PNG area pie chart for -name to this path")
		name       = flag.String("name", "", "department or author name for -export-pie")

		interactive = flag.Bool("i", false, "interactive terminal browser")
		form        = flag.Bool("form", false, "prompt for filter settings before ranking")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *fromYear != 0 {
		cfg.FromYear = *fromYear
	}
	if *toYear != 0 {
		cfg.ToYear = *toYear
	}
	if *regionFlag != "" {
		cfg.Region = *regionFlag
	}
	if *areasFlag != "" {
		cfg.Areas = splitList(*areasFlag)
	}
	if *minShow != 0 {
		cfg.MinShow = *minShow
	}
	if *dense {
		cfg.RankPolicy = string(ranking.PolicyDense)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var logger func(string)
	if *verbose {
		logger = func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	}

	tax, err := taxonomy.DefaultWithNextTier(cfg.NextTier)
	if err != nil {
		return err
	}

	if *robotAreas {
		return printAreasJSON(tax)
	}

	loaded, err := datasource.Load(cfg.DataDir, datasource.LoadOptions{
		Validation: datasource.DefaultValidationOptions(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	engine := ranking.NewEngine(tax, loaded.Regions, loaded.Records, ranking.Options{
		Policy:    cfg.Policy(),
		MinToShow: cfg.MinShow,
		Logger:    logger,
	})
	summarizer := summary.New(tax, loaded.Records)

	filter := ranking.Filter{
		FromYear: cfg.FromYear,
		ToYear:   cfg.ToYear,
		Region:   cfg.Region,
		Areas:    resolveAreas(tax, cfg.Areas),
	}

	// Saved per-data-dir filter fills in what config and flags left unset,
	// and an empty selection means everything.
	if saved, err := prefs.Load(cfg.DataDir); err == nil && saved != nil {
		if len(filter.Areas) == 0 && len(saved.Areas) > 0 {
			filter.Areas = saved.Areas
		}
	}
	if len(filter.Areas) == 0 {
		filter.Areas = tax.Roots()
	}

	if *form {
		if err := runFilterForm(tax, &filter); err != nil {
			return err
		}
	}

	if *exportPie != "" {
		return writePieChart(tax, loaded.Records, *name, filter, *exportPie)
	}

	if *interactive {
		return runInteractive(engine, summarizer, tax, cfg, filter, logger)
	}

	result := engine.Rank(filter)

	switch {
	case *robotRank:
		return printJSON(struct {
			Filter ranking.Filter `json:"filter"`
			ranking.Result
		}{Filter: filter, Result: result})

	case *tsv:
		fmt.Print(render.TSV(result, func(dept string) string {
			return summarizer.Joined(dept, filter.FromYear, filter.ToYear)
		}))
		return nil

	case *report:
		md := render.MarkdownReport(result, render.ReportOptions{
			FromYear: filter.FromYear,
			ToYear:   filter.ToYear,
			Region:   filter.Region,
			Areas:    filter.Areas,
			Summarize: func(dept string) string {
				return summarizer.Joined(dept, filter.FromYear, filter.ToYear)
			},
		})
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(render.RenderMarkdown(md, render.DetectWidth()))
		} else {
			fmt.Print(md)
		}
		return nil

	case *exportSVG != "":
		title := fmt.Sprintf("Department Ranking %d-%d", filter.FromYear, filter.ToYear)
		if err := export.BarChart(result, title, *exportSVG); err != nil {
			return err
		}
		fmt.Println("wrote", *exportSVG)
		return nil
	}

	fmt.Print(render.Table(result, render.TableOptions{
		ShowAreas: true,
		Summarize: func(dept string) string {
			return summarizer.Joined(dept, filter.FromYear, filter.ToYear)
		},
	}))
	return nil
}

// resolveAreas maps a preset name to its root codes and passes explicit code
// lists through. Unknown codes are left for the engine to ignore.
func resolveAreas(tax *taxonomy.Taxonomy, areas []string) []string {
	if len(areas) == 1 {
		if preset, ok := tax.GetPreset(taxonomy.PresetName(areas[0])); ok {
			return preset
		}
	}
	return areas
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// printAreasJSON emits the taxonomy for automation: every root with its
// label and venue codes.
func printAreasJSON(tax *taxonomy.Taxonomy) error {
	type area struct {
		Code   string   `json:"code"`
		Label  string   `json:"label"`
		Venues []string `json:"venues"`
	}
	out := struct {
		Presets []string `json:"presets"`
		Areas   []area   `json:"areas"`
		Regions []string `json:"regions"`
	}{}
	for _, p := range taxonomy.ListPresets() {
		out.Presets = append(out.Presets, string(p))
	}
	for _, root := range tax.Roots() {
		out.Areas = append(out.Areas, area{
			Code:   root,
			Label:  tax.Label(root),
			Venues: tax.Children(root),
		})
	}
	for _, r := range region.KnownFilters() {
		out.Regions = append(out.Regions, string(r))
	}
	return printJSON(out)
}

// runFilterForm prompts for year range, region, and areas.
func runFilterForm(tax *taxonomy.Taxonomy, filter *ranking.Filter) error {
	from := fmt.Sprintf("%d", filter.FromYear)
	to := fmt.Sprintf("%d", filter.ToYear)
	selected := append([]string(nil), filter.Areas...)

	var regionOpts []huh.Option[string]
	for _, r := range region.KnownFilters() {
		regionOpts = append(regionOpts, huh.NewOption(string(r), string(r)))
	}
	var areaOpts []huh.Option[string]
	for _, root := range tax.Roots() {
		areaOpts = append(areaOpts, huh.NewOption(tax.Label(root), root))
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("From year").Value(&from),
			huh.NewInput().Title("To year").Value(&to),
			huh.NewSelect[string]().Title("Region").Options(regionOpts...).Value(&filter.Region),
			huh.NewMultiSelect[string]().Title("Areas").Options(areaOpts...).Value(&selected),
		),
	)
	if err := f.Run(); err != nil {
		return err
	}

	if _, err := fmt.Sscanf(from, "%d", &filter.FromYear); err != nil {
		return fmt.Errorf("invalid from year %q", from)
	}
	if _, err := fmt.Sscanf(to, "%d", &filter.ToYear); err != nil {
		return fmt.Errorf("invalid to year %q", to)
	}
	filter.Areas = selected
	return nil
}

// writePieChart renders one name's dominant-area mix. The counts are summed
// per root area over the filter's year range.
func writePieChart(tax *taxonomy.Taxonomy, records []ranking.Record, name string, filter ranking.Filter, path string) error {
	if name == "" {
		return fmt.Errorf("-export-pie requires -name")
	}
	table := ranking.AggregateAreaCounts(records, filter.FromYear, filter.ToYear)
	byVenue := table[name]
	if len(byVenue) == 0 {
		return fmt.Errorf("no publications recorded for %q", name)
	}

	byRoot := make(map[string]float64)
	for venue, count := range byVenue {
		if tax.IsNextTier(venue) || !tax.Known(venue) {
			continue
		}
		byRoot[tax.Label(tax.Root(venue))] += count
	}
	if err := export.PieChart(byRoot, name, path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

// runInteractive launches the terminal browser, reloading live when the data
// files change, and persists the final filter for the data directory on
// clean exit.
func runInteractive(engine *ranking.Engine, summarizer *summary.Summarizer, tax *taxonomy.Taxonomy, cfg config.Config, filter ranking.Filter, logger func(string)) error {
	model := ui.NewModel(engine, summarizer, filter)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Watch the data files and push a reload into the running UI whenever
	// the active source changes. Watch setup failures are not fatal.
	sources, err := datasource.DiscoverSources(datasource.DiscoveryOptions{
		DataDir:                cfg.DataDir,
		ValidateAfterDiscovery: true,
		ValidationOptions:      datasource.DefaultValidationOptions(),
	})
	if err == nil && len(sources) > 0 {
		manager, merr := datasource.NewAutoRefreshManager(sources, datasource.AutoRefreshOptions{
			OnSourceChange: func(src datasource.DataSource, reason string) {
				loaded, lerr := datasource.Load(cfg.DataDir, datasource.LoadOptions{
					Validation: datasource.DefaultValidationOptions(),
					Logger:     logger,
				})
				if lerr != nil {
					return
				}
				p.Send(ui.ReloadMsg{
					Engine: ranking.NewEngine(tax, loaded.Regions, loaded.Records, ranking.Options{
						Policy:    cfg.Policy(),
						MinToShow: cfg.MinShow,
						Logger:    logger,
					}),
					Summarizer: summary.New(tax, loaded.Records),
					SourcePath: src.Path,
				})
			},
		})
		if merr == nil {
			manager.Start()
			defer manager.Stop()
		}
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ui.Model); ok {
		last := m.Filter()
		_ = prefs.Save(cfg.DataDir, prefs.FilterPrefs{
			FromYear: last.FromYear,
			ToYear:   last.ToYear,
			Region:   last.Region,
			Areas:    last.Areas,
		})
	}
	return nil
}
