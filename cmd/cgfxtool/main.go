package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/cgfx"
	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/internal/demo"
	"github.com/wippyai/cgfx/record"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to a CGFX file to inspect")
		list        = flag.Bool("list", false, "List every dictionary entry and exit")
		lookup      = flag.String("lookup", "", "Look up an entry (section/name)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		demoOut     = flag.String("demo", "", "Write the demo scene to this path")
		profileName = flag.String("profile", "standard", "Encoding profile (standard, legacy)")
		pointers    = flag.String("pointers", "field", "Pointer base (field, record)")
		verbose     = flag.Bool("v", false, "Log pipeline details to stderr")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		cgfx.SetLogger(logger)
		record.SetLogger(logger)
	}

	profile, ok := cgfx.ProfileByName(*profileName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", *profileName)
		os.Exit(1)
	}
	base, err := parsePointerBase(*pointers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := []cgfx.Option{cgfx.WithProfile(profile), cgfx.WithPointerBase(base)}

	if *demoOut != "" {
		if err := writeDemo(*demoOut, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *inFile == "" {
			return
		}
	}

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: cgfxtool -in <file.cgfx> [-list] [-lookup section/name]")
		fmt.Fprintln(os.Stderr, "       cgfxtool -in <file.cgfx> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       cgfxtool -demo <out.cgfx> [-profile standard|legacy]")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*inFile, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *lookup, *list, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parsePointerBase(name string) (record.PointerBase, error) {
	switch name {
	case "field":
		return record.FieldRelative, nil
	case "record":
		return record.RecordRelative, nil
	}
	return 0, fmt.Errorf("unknown pointer base %q", name)
}

func writeDemo(path string, opts []cgfx.Option) error {
	f, err := demo.Build(opts...)
	if err != nil {
		return fmt.Errorf("build demo: %w", err)
	}
	data, err := cgfx.Encode(f)
	if errors.IsOversize(err) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes, profile %s)\n", path, len(data), f.Profile().Name)
	return nil
}

func run(inFile, lookup string, listAll bool, opts []cgfx.Option) error {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	parsed, err := cgfx.Parse(data, opts...)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	fmt.Printf("File: %s\n", inFile)
	fmt.Printf("Version: %#x\n", parsed.Header.Version)
	fmt.Printf("Size: %d bytes\n", parsed.Header.FileSize)
	fmt.Printf("Blocks: %d\n", parsed.Header.Blocks)
	if parsed.Header.Blocks > 1 {
		fmt.Printf("IMAG: %#x (%d bytes)\n", parsed.ImagOffset, parsed.ImagSize)
	}

	if lookup != "" {
		section, name, ok := strings.Cut(lookup, "/")
		if !ok {
			return fmt.Errorf("lookup %q: expected section/name", lookup)
		}
		s, ok := cgfx.ParseSection(section)
		if !ok {
			return fmt.Errorf("unknown section %q", section)
		}
		e, err := parsed.Lookup(s, name)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s %s\n", render(sectionStyle, s.String()), render(entryStyle, e.Name))
		fmt.Print(formatEntry(e))
		return nil
	}

	fmt.Printf("\nSections:\n")
	for i := range cgfx.NumSections {
		s := cgfx.Section(i)
		d := parsed.Dict(s)
		if d == nil {
			continue
		}
		fmt.Printf("  %s (%d entries at %#x)\n", render(sectionStyle, s.String()), d.Count, d.Offset)
		if !listAll {
			continue
		}
		for _, name := range d.Names() {
			e, _ := d.Lookup(name)
			fmt.Printf("    %s -> %#x\n", render(entryStyle, name), e.ContentOffset)
		}
	}
	return nil
}

func formatEntry(e cgfx.ParsedEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  refbit:  %d\n", e.RefBit)
	fmt.Fprintf(&b, "  left:    %d\n", e.Left)
	fmt.Fprintf(&b, "  right:   %d\n", e.Right)
	fmt.Fprintf(&b, "  name:    %#x\n", e.NameOffset)
	fmt.Fprintf(&b, "  content: %#x\n", e.ContentOffset)
	return b.String()
}
