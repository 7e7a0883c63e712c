package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Toggle flags read like the settings toggles: a bare flag enables it and an
// optional following literal such as "no" or "off" sets it explicitly.

const (
	toggleFlagTypeName       = "bool"
	toggleEnabledLiteral     = "true"
	toggleAcceptedLiterals   = "true, false, yes, no, on, off, 1, 0"
	flagArgumentTerminator   = "--"
	longFlagPrefix           = "--"
	errorToggleLiteralFormat = "%w %q; accepted values: %s"
	errorToggleFlagFormat    = "--%s: %w"
)

var (
	errInvalidToggleLiteral = errors.New("invalid toggle value")
	enabledToggleLiterals   = []string{"true", "t", "yes", "y", "on", "1"}
	disabledToggleLiterals  = []string{"false", "f", "no", "n", "off", "0"}
)

// parseBooleanLiteral interprets a toggle literal case-insensitively.
func parseBooleanLiteral(input string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if slices.Contains(enabledToggleLiterals, normalized) {
		return true, nil
	}
	if slices.Contains(disabledToggleLiterals, normalized) {
		return false, nil
	}
	return false, fmt.Errorf(errorToggleLiteralFormat, errInvalidToggleLiteral, input, toggleAcceptedLiterals)
}

func isBooleanLiteral(input string) bool {
	_, parseError := parseBooleanLiteral(input)
	return parseError == nil
}

// toggleFlag is a pflag.Value over a bool that accepts every toggle literal.
type toggleFlag struct {
	name   string
	target *bool
}

func (flag toggleFlag) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		*flag.target = true
		return nil
	}
	enabled, parseError := parseBooleanLiteral(input)
	if parseError != nil {
		return fmt.Errorf(errorToggleFlagFormat, flag.name, parseError)
	}
	*flag.target = enabled
	return nil
}

func (flag toggleFlag) String() string {
	if flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag toggleFlag) Type() string { return toggleFlagTypeName }

// registerToggleFlag defines a toggle flag that may be given without a value.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flag := flagSet.VarPF(toggleFlag{name: name, target: target}, name, "", usage)
	flag.DefValue = strconv.FormatBool(false)
	flag.NoOptDefVal = toggleEnabledLiteral
}

// joinToggleLiterals rewrites "--flag literal" into "--flag=literal" for every
// toggle flag known to command or its subcommands. A following argument that
// is not a toggle literal, such as a note path, stays positional.
func joinToggleLiterals(command *cobra.Command, arguments []string) []string {
	toggles := toggleFlagNames(command)
	joined := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == flagArgumentTerminator {
			return append(joined, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(argument, longFlagPrefix)
		if isLongFlag && toggles[flagName] && index+1 < len(arguments) && isBooleanLiteral(arguments[index+1]) {
			joined = append(joined, argument+"="+arguments[index+1])
			index++
			continue
		}
		joined = append(joined, argument)
	}
	return joined
}

func toggleFlagNames(command *cobra.Command) map[string]bool {
	names := map[string]bool{}
	collect := func(flag *pflag.Flag) {
		if _, isToggle := flag.Value.(toggleFlag); isToggle {
			names[flag.Name] = true
		}
	}
	var walk func(current *cobra.Command)
	walk = func(current *cobra.Command) {
		current.PersistentFlags().VisitAll(collect)
		current.Flags().VisitAll(collect)
		for _, child := range current.Commands() {
			walk(child)
		}
	}
	walk(command)
	return names
}
