// Where: internal/commands/completion.go
// What: Shell completion command implementation.
// Why: Provide basic subcommand completion for bash, zsh, and fish.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

var completionCommands = map[string][]string{
	"creds":       {"check", "init"},
	"mcp":         {"call", "tools", "ping"},
	"kernel":      {"push", "pull", "status", "output", "wait"},
	"dataset":     {"create", "download"},
	"model":       {"create"},
	"competition": {"list", "report", "download", "submit", "submissions"},
	"badge":       {"run", "status", "list"},
	"verify":      nil,
	"completion":  {"bash", "zsh", "fish"},
	"version":     nil,
}

func topCommands() []string {
	var names []string
	for name := range completionCommands {
		names = append(names, name)
	}
	// Stable script output across runs.
	sort.Strings(names)
	return names
}

func runCompletionBash(ctx *commandContext) int {
	var caseParts []string
	for _, cmd := range topCommands() {
		subs := completionCommands[cmd]
		if len(subs) == 0 {
			continue
		}
		caseParts = append(caseParts, fmt.Sprintf(`        %s)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;`, cmd, strings.Join(subs, " ")))
	}

	script := `_kagglectl_completion() {
    local cur cmd
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    cmd="${COMP_WORDS[1]}"

    case "${cmd}" in
%s
    esac

    if [[ ${COMP_CWORD} -le 1 ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
        return 0
    fi
}
complete -F _kagglectl_completion kagglectl
`
	writeString(ctx.out, fmt.Sprintf(script, strings.Join(caseParts, "\n"), strings.Join(topCommands(), " ")))
	return 0
}

func runCompletionZsh(ctx *commandContext) int {
	var lines []string
	for _, cmd := range topCommands() {
		subs := completionCommands[cmd]
		if len(subs) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf(`        %s)
            _values '%s subcommand' %s
            ;;`, cmd, cmd, strings.Join(subs, " ")))
	}

	script := `#compdef kagglectl
_kagglectl() {
    local -a commands
    commands=(%s)

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "${words[2]}" in
%s
    esac
}
_kagglectl
`
	writeString(ctx.out, fmt.Sprintf(script, strings.Join(topCommands(), " "), strings.Join(lines, "\n")))
	return 0
}

func runCompletionFish(ctx *commandContext) int {
	var b strings.Builder
	for _, cmd := range topCommands() {
		fmt.Fprintf(&b, "complete -c kagglectl -n '__fish_use_subcommand' -a '%s'\n", cmd)
		for _, sub := range completionCommands[cmd] {
			fmt.Fprintf(&b, "complete -c kagglectl -n '__fish_seen_subcommand_from %s' -a '%s'\n", cmd, sub)
		}
	}
	writeString(ctx.out, b.String())
	return 0
}

func writeString(out io.Writer, text string) {
	if out == nil || text == "" {
		return
	}
	_, _ = io.WriteString(out, text)
}
