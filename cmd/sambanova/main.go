package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sambanova-go/config"
	"sambanova-go/llm"
	"sambanova-go/llm/sambanova"
)

var (
	// Flags
	cookie    string
	model     string
	system    string
	maxTokens int
	noStream  bool
	verbose   bool

	// Styles
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	usageStyle   = lipgloss.NewStyle().Faint(true)

	// Root command
	rootCmd = &cobra.Command{
		Use:   "sambanova",
		Short: "Chat and vision completions via the SambaNova cloud endpoint",
		Long:  "sambanova-go - streaming chat and vision completions using a browser session cookie",
	}

	chatCmd = &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a chat prompt and stream the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	}

	visionCmd = &cobra.Command{
		Use:   "vision <image> [prompt]",
		Short: "Describe a local image",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runVision,
	}

	modelsCmd = &cobra.Command{
		Use:   "models",
		Short: "List available chat and vision models",
		Run:   listModels,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cookie, "cookie", "", "Session cookie (falls back to SAMBANOVA_COOKIE, then config file)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	chatCmd.Flags().StringVar(&system, "system", "", "System prompt")
	chatCmd.Flags().IntVar(&maxTokens, "max-tokens", 2048, "Response token budget")
	chatCmd.Flags().BoolVar(&noStream, "no-stream", false, "Print the full reply at once instead of streaming")

	visionCmd.Flags().IntVar(&maxTokens, "max-tokens", 2048, "Response token budget")
	visionCmd.Flags().BoolVar(&noStream, "no-stream", false, "Print the full reply at once instead of streaming")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(visionCmd)
	rootCmd.AddCommand(modelsCmd)

	// Bind flags to viper
	viper.BindPFlags(rootCmd.PersistentFlags())
}

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	client, configManager, err := newClient()
	if err != nil {
		return err
	}

	if model == "" {
		model = configManager.GetDefaultChatModel()
	}
	if verbose {
		fmt.Printf("Using model: %s\n", model)
	}

	opts := []llm.CallOption{
		llm.WithModel(model),
		llm.WithMaxTokens(maxTokens),
	}
	if system != "" {
		opts = append(opts, llm.WithSystemPrompt(system))
	}
	if !noStream {
		opts = append(opts, llm.WithChunkHandler(func(chunk string) {
			fmt.Print(chunk)
		}))
	}

	prompt := strings.Join(args, " ")
	result, err := client.Chat(cmd.Context(), prompt, opts...)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func runVision(cmd *cobra.Command, args []string) error {
	client, configManager, err := newClient()
	if err != nil {
		return err
	}

	if model == "" {
		model = configManager.GetDefaultVisionModel()
	}
	if verbose {
		fmt.Printf("Using model: %s\n", model)
	}

	imagePath := args[0]
	prompt := "Please provide a detailed description of the image."
	if len(args) > 1 {
		prompt = strings.Join(args[1:], " ")
	}

	opts := []llm.CallOption{
		llm.WithModel(model),
		llm.WithMaxTokens(maxTokens),
	}
	if !noStream {
		opts = append(opts, llm.WithChunkHandler(func(chunk string) {
			fmt.Print(chunk)
		}))
	}

	result, err := client.Vision(cmd.Context(), prompt, imagePath, opts...)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func listModels(cmd *cobra.Command, args []string) {
	fmt.Println(headingStyle.Render("Chat models:"))
	for _, m := range llm.ChatModels {
		fmt.Printf("  %s\n", m)
	}
	fmt.Println(headingStyle.Render("Vision models:"))
	for _, m := range llm.VisionModels {
		fmt.Printf("  %s\n", m)
	}
}

// newClient resolves the session cookie (flag > env > config file) and
// builds the API client.
func newClient() (*sambanova.Client, *config.Manager, error) {
	configManager, err := config.NewManager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if cookie == "" {
		cookie = os.Getenv("SAMBANOVA_COOKIE")
	}
	if cookie == "" {
		cookie = configManager.GetCookie()
	}
	if cookie == "" {
		return nil, nil, fmt.Errorf("no session cookie: pass --cookie, set SAMBANOVA_COOKIE, or store one in the config file")
	}

	if verbose {
		os.Setenv("SAMBANOVA_DEBUG", "true")
	}

	client, err := sambanova.New(cookie)
	if err != nil {
		return nil, nil, err
	}

	return client, configManager, nil
}

func printResult(result *llm.StreamResult) {
	if noStream {
		fmt.Println(result.Content)
	} else {
		fmt.Println()
	}

	if result.Usage != nil {
		fmt.Println(usageStyle.Render(fmt.Sprintf("tokens: %d prompt + %d completion = %d total",
			result.Usage.PromptTokens, result.Usage.CompletionTokens, result.Usage.TotalTokens)))
	}
	if verbose && result.Skipped > 0 {
		fmt.Println(usageStyle.Render(fmt.Sprintf("skipped %d malformed stream fragments", result.Skipped)))
	}
}
