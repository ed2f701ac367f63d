// Package templates formats cobra help text: heredoc-normalized long
// descriptions and examples, and grouped command listings for the root
// command.
package templates

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const indentation = `  `

// LongDesc normalizes a command's long description to follow the conventions.
func LongDesc(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.TrimSpace(heredoc.Doc(s))
}

// Examples normalizes a command's examples to follow the conventions.
func Examples(s string) string {
	if len(s) == 0 {
		return s
	}
	doc := strings.TrimSpace(heredoc.Doc(s))
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indentation + line
	}
	return strings.Join(lines, "\n")
}

// CommandGroup is a titled set of subcommands.
type CommandGroup struct {
	Message  string
	Commands []*cobra.Command
}

// CommandGroups is the ordered list of groups shown by the root help.
type CommandGroups []CommandGroup

// Add registers every grouped command on c.
func (g CommandGroups) Add(c *cobra.Command) {
	for _, group := range g {
		c.AddCommand(group.Commands...)
	}
}

// Has reports whether c belongs to one of the groups.
func (g CommandGroups) Has(c *cobra.Command) bool {
	for _, group := range g {
		for _, command := range group.Commands {
			if command == c {
				return true
			}
		}
	}
	return false
}

// ActsAsRootCommand replaces the usage output of cmd with a grouped listing.
// Flags named in filters are hidden from the root usage.
func ActsAsRootCommand(cmd *cobra.Command, filters []string, groups ...CommandGroup) {
	if cmd == nil {
		panic("nil root command")
	}
	all := CommandGroups(groups)
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if c != cmd {
			return defaultUsage(c)
		}
		return rootUsage(c, all, filters)
	})
}

func defaultUsage(c *cobra.Command) error {
	out := c.OutOrStderr()
	fmt.Fprintf(out, "Usage:\n%s%s\n", indentation, c.UseLine())
	if c.HasExample() {
		fmt.Fprintf(out, "\nExamples:\n%s\n", c.Example)
	}
	if c.HasAvailableLocalFlags() {
		fmt.Fprintf(out, "\nOptions:\n%s", c.LocalFlags().FlagUsages())
	}
	if c.HasAvailableInheritedFlags() {
		fmt.Fprintf(out, "\nGlobal Options:\n%s", c.InheritedFlags().FlagUsages())
	}
	return nil
}

func rootUsage(c *cobra.Command, groups CommandGroups, filters []string) error {
	out := c.OutOrStderr()
	fmt.Fprintf(out, "Usage:\n%s%s [command]\n", indentation, c.CommandPath())

	for _, group := range groups {
		fmt.Fprintf(out, "\n%s\n", group.Message)
		for _, command := range group.Commands {
			if !command.IsAvailableCommand() {
				continue
			}
			fmt.Fprintf(out, "%s%s %s\n", indentation, rpad(command.Name(), command.NamePadding()), command.Short)
		}
	}

	var others []*cobra.Command
	for _, command := range c.Commands() {
		if command.IsAvailableCommand() && !groups.Has(command) {
			others = append(others, command)
		}
	}
	if len(others) > 0 {
		fmt.Fprintf(out, "\nOther Commands:\n")
		for _, command := range others {
			fmt.Fprintf(out, "%s%s %s\n", indentation, rpad(command.Name(), command.NamePadding()), command.Short)
		}
	}

	flags := c.PersistentFlags()
	for _, name := range filters {
		if f := flags.Lookup(name); f != nil {
			f.Hidden = true
		}
	}
	if usages := flags.FlagUsages(); usages != "" {
		fmt.Fprintf(out, "\nGlobal Options:\n%s", usages)
	}
	fmt.Fprintf(out, "\nUse \"%s <command> --help\" for more information about a given command.\n", c.CommandPath())
	return nil
}

func rpad(s string, padding int) string {
	return fmt.Sprintf(fmt.Sprintf("%%-%ds", padding), s)
}
