package command

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultRegistry returns the built-in command set. Individual command
// semantics stay thin: flow-control commands only set the proceed latch (the
// execution engine does the actual stepping), and introspection commands
// print what the bound context exposes.
func DefaultRegistry() Registry {
	return Registry{
		{
			Name:                "where",
			Description:         "Print the call stack",
			Regexp:              regexp.MustCompile(`^\s*(?:where|bt|backtrace)\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			Handler:             whereHandler,
		},
		{
			Name:                "frame",
			Description:         "Select the frame commands operate on",
			Regexp:              regexp.MustCompile(`^\s*f(?:rame)?(?:\s+\d+)?\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			Handler:             frameHandler,
		},
		{
			Name:                "info",
			Description:         "Show breakpoints or variables",
			Regexp:              regexp.MustCompile(`^\s*info(?:\s+.*)?$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             infoHandler,
		},
		{
			Name:                "display",
			Description:         "Add a display expression or list them",
			Regexp:              regexp.MustCompile(`^\s*display(?:\s+.+)?$`),
			Event:               true,
			AlwaysRunLevel:      2,
			AllowedInPostMortem: true,
			Handler:             displayHandler,
		},
		{
			Name:                "break",
			Description:         "Set a breakpoint: break [file:]line",
			Regexp:              regexp.MustCompile(`^\s*b(?:reak)?(?:\s+\S+)?\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             breakHandler,
		},
		{
			Name:                "delete",
			Description:         "Delete breakpoints: delete [nums]",
			Regexp:              regexp.MustCompile(`^\s*delete(?:\s+[\d\s]+)?\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             deleteHandler,
		},
		{
			Name:                "condition",
			Description:         "Set or clear a breakpoint condition",
			Regexp:              regexp.MustCompile(`^\s*condition\s+\d+(?:\s+.*)?$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             conditionHandler,
		},
		{
			Name:                "enable",
			Description:         "Enable breakpoints",
			Regexp:              regexp.MustCompile(`^\s*enable(?:\s+[\d\s]+)?\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             enableHandler,
		},
		{
			Name:                "disable",
			Description:         "Disable breakpoints",
			Regexp:              regexp.MustCompile(`^\s*disable(?:\s+[\d\s]+)?\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             disableHandler,
		},
		{
			Name:             "continue",
			Description:      "Resume the program",
			Regexp:           regexp.MustCompile(`^\s*c(?:ont(?:inue)?)?(?:\s+\d+)?\s*$`),
			Event:            true,
			NeedsLiveContext: true,
			Handler:          proceedHandler,
		},
		{
			Name:             "next",
			Description:      "Step over the next line",
			Regexp:           regexp.MustCompile(`^\s*n(?:ext)?(?:\s+\d+)?\s*$`),
			Event:            true,
			NeedsLiveContext: true,
			Handler:          proceedHandler,
		},
		{
			Name:             "step",
			Description:      "Step into the next line",
			Regexp:           regexp.MustCompile(`^\s*s(?:tep)?(?:\s+\d+)?\s*$`),
			Event:            true,
			NeedsLiveContext: true,
			Handler:          proceedHandler,
		},
		{
			Name:             "finish",
			Description:      "Run until the current frame returns",
			Regexp:           regexp.MustCompile(`^\s*fin(?:ish)?\s*$`),
			Event:            true,
			NeedsLiveContext: true,
			Handler:          proceedHandler,
		},
		{
			Name:                "help",
			Description:         "List available commands",
			Regexp:              regexp.MustCompile(`^\s*h(?:elp)?\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             helpHandler,
		},
		{
			Name:                "quit",
			Description:         "End the debug session",
			Regexp:              regexp.MustCompile(`^\s*(?:q(?:uit)?|exit)\s*$`),
			Event:               true,
			AllowedInPostMortem: true,
			AllowedInControl:    true,
			Handler:             quitHandler,
		},
	}
}

func whereHandler(s *State, _ string) error {
	if s.Context == nil {
		return nil
	}
	depth := s.Context.StackDepth()
	for i := 0; i < depth; i++ {
		mark := "   "
		if i == s.FramePos {
			mark = "-->"
		}
		s.Print("%s #%d  %s:%d\n", mark, i, s.Context.FrameFile(i), s.Context.FrameLine(i))
	}
	return nil
}

func frameHandler(s *State, input string) error {
	if s.Context == nil {
		s.ErrMsg("No stack context available.\n")
		return nil
	}
	fields := strings.Fields(input)
	pos := 0
	if len(fields) > 1 {
		pos, _ = strconv.Atoi(fields[1])
	}
	if pos < 0 || pos >= s.Context.StackDepth() {
		s.ErrMsg("Frame number %d out of range (0..%d).\n", pos, s.Context.StackDepth()-1)
		return nil
	}
	s.FramePos = pos
	s.Print("#%d  %s:%d\n", pos, s.Context.FrameFile(pos), s.Context.FrameLine(pos))
	return nil
}

func infoHandler(s *State, input string) error {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		s.ErrMsg("Usage: info <breakpoints|variables>\n")
		return nil
	}
	switch fields[1] {
	case "breakpoints":
		if s.Breakpoints == nil || s.Breakpoints.IsEmpty() {
			s.Print("No breakpoints.\n")
			return nil
		}
		s.Print("Num Enb What\n")
		for _, bp := range s.Breakpoints.All() {
			enb := "y"
			if !bp.Enabled {
				enb = "n"
			}
			s.Print("%-3d %-3s at %s:%d", bp.Number, enb, bp.File, bp.Line)
			if bp.Condition != "" {
				s.Print(" if %s", bp.Condition)
			}
			s.Print("\n")
		}
	case "variables":
		lister, ok := s.Context.(VariableLister)
		if !ok {
			return nil
		}
		for _, v := range lister.Variables(s.FramePos) {
			s.Print("%s\n", v)
		}
	default:
		s.ErrMsg("Unknown info subcommand: %q\n", fields[1])
	}
	return nil
}

func displayHandler(s *State, input string) error {
	expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "display"))
	if expr != "" {
		n := s.Display.Add(expr)
		s.Print("%d: %s\n", n, expr)
		return nil
	}
	for i, e := range s.Display.All() {
		s.Print("%d: %s\n", i+1, e)
	}
	return nil
}

func breakHandler(s *State, input string) error {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		s.ErrMsg("Usage: break [file:]line\n")
		return nil
	}
	loc := fields[1]
	file := ""
	lineSpec := loc
	if i := strings.LastIndex(loc, ":"); i >= 0 {
		file = loc[:i]
		lineSpec = loc[i+1:]
	}
	line, err := strconv.Atoi(lineSpec)
	if err != nil {
		s.ErrMsg("Bad breakpoint location %q.\n", loc)
		return nil
	}
	if file == "" {
		file, err = s.CurrentFile()
		if err != nil {
			s.ErrMsg("No file specified and no current file.\n")
			return err
		}
	}
	bp := s.Breakpoints.Add(file, line)
	s.Print("Created breakpoint %d at %s:%d\n", bp.Number, file, line)
	return nil
}

func deleteHandler(s *State, input string) error {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		if s.Confirm("Delete all breakpoints? (y/n) ") {
			s.Breakpoints.Clear()
		}
		return nil
	}
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil || !s.Breakpoints.Remove(n) {
			s.ErrMsg("No breakpoint number %s.\n", f)
		}
	}
	return nil
}

func conditionHandler(s *State, input string) error {
	fields := strings.Fields(input)
	n, _ := strconv.Atoi(fields[1])
	bp := s.Breakpoints.Get(n)
	if bp == nil {
		s.ErrMsg("No breakpoint number %d.\n", n)
		return nil
	}
	bp.Condition = strings.TrimSpace(strings.Join(fields[2:], " "))
	return nil
}

func enableHandler(s *State, input string) error {
	return setEnabled(s, input, true)
}

func disableHandler(s *State, input string) error {
	return setEnabled(s, input, false)
}

func setEnabled(s *State, input string, enabled bool) error {
	fields := strings.Fields(input)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		bp := s.Breakpoints.Get(n)
		if bp == nil {
			s.ErrMsg("No breakpoint number %d.\n", n)
			continue
		}
		bp.Enabled = enabled
	}
	return nil
}

func proceedHandler(s *State, _ string) error {
	s.Proceed()
	return nil
}

func helpHandler(s *State, _ string) error {
	seen := map[string]string{}
	names := []string{}
	for _, c := range s.Commands {
		def := c.Def()
		if _, ok := seen[def.Name]; ok || def.Unknown {
			continue
		}
		seen[def.Name] = def.Description
		names = append(names, def.Name)
	}
	sort.Strings(names)
	s.Print("Available commands:\n")
	for _, name := range names {
		s.Print("  %-10s %s\n", name, seen[name])
	}
	return nil
}

func quitHandler(s *State, _ string) error {
	if !s.Confirm("Really quit? (y/n) ") {
		return nil
	}
	return ErrTerminate
}
