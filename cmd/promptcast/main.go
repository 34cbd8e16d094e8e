// Package main provides the promptcast demo console. It wires the argument
// handler to an in-memory transport and walks an example command's arguments
// interactively: typed lines are messages from one author on one
// conversation, and the engine prompts, retries, and collects exactly as it
// would behind a real chat dispatcher.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promptcast/internal/caster"
	"promptcast/internal/config"
	"promptcast/internal/logger"
	"promptcast/internal/processor"
	"promptcast/internal/resolver"
	"promptcast/internal/transport"
	"promptcast/internal/version"
	"promptcast/pkg/argtypes"
)

var (
	logLevel   string
	logFile    string
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptcast",
	Short: "promptcast - conversational argument resolution engine",
	Long: `promptcast resolves command arguments from chat messages: it casts phrases
to typed values and, when casting fails, drives an interactive re-prompt
session with retries, timeouts, cancel/stop words, and infinite collection.
Running without a subcommand starts the demo console.`,
	Run: runConsole,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		detailed, _ := cmd.Flags().GetBool("detailed")
		if detailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file with prompting defaults")

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}

	versionCmd.Flags().Bool("detailed", false, "Show detailed build information")
	rootCmd.AddCommand(versionCmd)
}

const (
	demoConversation = "console"
	demoAuthor       = "you"
)

func runConsole(_ *cobra.Command, _ []string) {
	settings, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := logLevel
	if level == "" {
		level = settings.LogLevel
	}
	file := logFile
	if file == "" {
		file = settings.LogFile
	}
	if err := logger.Configure(level, file); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}

	hub := transport.NewHub("promptcast")
	hub.OnSend(func(m *argtypes.Message) {
		fmt.Printf("promptcast> %s\n", m.Content)
	})

	handler := processor.NewHandler(processor.Options{
		Resolver:  resolver.New(),
		Transport: hub,
		Lookahead: prefixLookahead{prefix: "!"},
		Defaults:  settings.PromptConfig(),
	})

	// Feed typed lines into the conversation
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			hub.Receive(demoConversation, demoAuthor, scanner.Text())
		}
	}()

	fmt.Println("promptcast demo console. Answer the prompts; \"cancel\" aborts,")
	fmt.Println("\"stop\" finishes a collection, anything starting with \"!\" breaks out.")

	results, outcome := collectProfile(handler)
	switch outcome {
	case outcomeCancelled:
		fmt.Println("Invocation cancelled.")
	case outcomeBreakout:
		fmt.Println("Reply looked like a new command; invocation abandoned.")
	default:
		fmt.Printf("Resolved arguments: %v\n", results)
	}
}

type outcome int

const (
	outcomeResolved outcome = iota
	outcomeCancelled
	outcomeBreakout
)

// collectProfile resolves the demo command's arguments in order, the way a
// dispatcher would after tokenizing a message.
func collectProfile(handler *processor.Handler) (map[string]any, outcome) {
	cmd := &argtypes.Command{ID: "profile"}
	trigger := &argtypes.Message{
		ID:             "trigger",
		ConversationID: demoConversation,
		AuthorID:       demoAuthor,
		Content:        "!profile",
	}

	arguments := []*argtypes.Argument{
		{
			ID:   "name",
			Type: caster.Named("string"),
			Prompt: &argtypes.PromptConfig{
				Start: argtypes.StaticText("What is your name?"),
				Retry: argtypes.StaticText("A name, please."),
			},
		},
		{
			ID:   "age",
			Type: caster.Range(caster.Named("integer"), 0, 150, true),
			Prompt: &argtypes.PromptConfig{
				Retries: argtypes.Int(2),
				Start:   argtypes.StaticText("How old are you?"),
				Retry: func(d argtypes.PromptData) string {
					return fmt.Sprintf("%q is not an age between 0 and 150. Try again.", d.Phrase)
				},
				Ended:  argtypes.StaticText("Too many tries."),
				Cancel: argtypes.StaticText("Okay, cancelled."),
			},
		},
		{
			ID:   "languages",
			Type: caster.Words("go", "rust", "python", "typescript"),
			Prompt: &argtypes.PromptConfig{
				Infinite: argtypes.Bool(true),
				Limit:    argtypes.Int(3),
				Start: argtypes.LineText(
					"Which languages do you write? One per message.",
					"Say \"stop\" when you are done.",
				),
				Retry: argtypes.StaticText("Not one I know. go, rust, python or typescript?"),
			},
		},
	}

	results := make(map[string]any, len(arguments))
	for _, arg := range arguments {
		value, err := handler.Process(context.Background(), cmd, arg, trigger, results, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "transport failure: %v\n", err)
			return nil, outcomeCancelled
		}
		if argtypes.IsCancel(value) {
			return nil, outcomeCancelled
		}
		if _, retry := argtypes.RetryInput(value); retry {
			return nil, outcomeBreakout
		}
		results[arg.ID] = value
	}
	return results, outcomeResolved
}

// prefixLookahead is the demo stand-in for the dispatcher's command parser.
type prefixLookahead struct {
	prefix string
}

func (p prefixLookahead) LooksLikeCommand(content string) bool {
	return strings.HasPrefix(content, p.prefix)
}
