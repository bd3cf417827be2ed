package cmd

import (
	"fmt"
	"os"

	"lisplet/repl"
)

type (
	CommandFunc func(args []string)

	FlagInfo struct {
		Name        string
		Description string
	}

	CommandInfo struct {
		Description string
		Function    CommandFunc
		Flags       []FlagInfo
	}
)

var commands map[string]CommandInfo

func init() {
	commands = map[string]CommandInfo{
		"repl": {
			Description: "Starts an interactive session (the default when no command is given)",
			Function:    Repl,
			Flags:       []FlagInfo{},
		},
		"run": {
			Description: "Takes the filepath of a script, and executes it",
			Function:    Run,
			Flags: []FlagInfo{
				{
					Name:        "-f",
					Description: "script file path",
				},
			},
		},
		"help": {
			Description: "Prints the usage of all commands",
			Function:    Help,
			Flags:       []FlagInfo{},
		},
	}
}

func Execute() {
	if len(os.Args) < 2 {
		Repl(nil)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %v, check help for manual.\n", name)
		os.Exit(2)
	}

	cmd.Function(args)
}

func Repl(_ []string) {
	cfg, err := repl.LoadConfig(repl.DefaultConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	if err := repl.Start(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func Run(args []string) {
	// accept both "run -f path" and "run path"
	if len(args) > 0 && args[0] == "-f" {
		args = args[1:]
	}
	if len(args) < 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "ERROR: provide the filepath of the script to run")
		os.Exit(2)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	session := repl.NewSession(os.Stdout)
	if _, _, err := session.EvalScript(string(content)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func Help(args []string) {
	if len(args) == 1 {
		name := args[0]
		cmd, ok := commands[name]
		if !ok {
			fmt.Println("ERROR: provided command isn't supported")
			return
		}
		fmt.Printf("\n\033[1;36m%v\033[0m\n  %v\n", name, cmd.Description)
		for _, flag := range cmd.Flags {
			fmt.Printf("  \033[1;33m%v\033[0m - %v\n", flag.Name, flag.Description)
		}
		fmt.Println()
		return
	}

	fmt.Println("\n\033[1;35mSupported Commands:\033[0m")
	for name, cmd := range commands {
		fmt.Printf("\n  \033[1;36m%v\033[0m\n    %v\n", name, cmd.Description)
		for _, flag := range cmd.Flags {
			fmt.Printf("    \033[1;33m%v\033[0m - %v\n", flag.Name, flag.Description)
		}
	}
	fmt.Println()
}
