package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/client"
	"github.com/supchaser/postergen/internal/app/credential"
	"github.com/supchaser/postergen/internal/config"
	"github.com/supchaser/postergen/internal/utils/logger"
	"golang.org/x/term"
)

type ui struct {
	title func(a ...interface{}) string
	ok    func(a ...interface{}) string
	info  func(a ...interface{}) string
	warn  func(a ...interface{}) string
	err   func(a ...interface{}) string
	dim   func(a ...interface{}) string
}

func newUI() *ui {
	return &ui{
		title: color.New(color.FgHiCyan, color.Bold).SprintFunc(),
		ok:    color.New(color.FgGreen, color.Bold).SprintFunc(),
		info:  color.New(color.FgCyan).SprintFunc(),
		warn:  color.New(color.FgYellow).SprintFunc(),
		err:   color.New(color.FgRed, color.Bold).SprintFunc(),
		dim:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	credentialsPath string
	baseURL         string
	mock            bool
	mockArtifacts   []string
	timeout         time.Duration
}

func (o *options) store() *credential.Store {
	return credential.NewStore(credential.NewFilePersister(o.credentialsPath))
}

func (o *options) httpClient() *http.Client {
	return &http.Client{Timeout: o.timeout}
}

func (o *options) taskClient(creds *credential.Store) app.TaskClient {
	if o.mock {
		return client.NewOfflineClient(creds, o.mockArtifacts, nil)
	}
	return client.NewDashScopeClient(o.baseURL, creds, o.httpClient())
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func newRootCmd(ui *ui) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "postergen",
		Short: "Poster generation CLI",
		Long:  "Submit poster generation tasks, wait for them and download the results.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init("quiet")
		},
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.PersistentFlags().StringVar(&opts.credentialsPath, "credentials", credential.DefaultFilePath(), "Credential file")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", getenv("DASHSCOPE_BASE_URL", client.DefaultBaseURL), "Generation service base URL")
	root.PersistentFlags().BoolVar(&opts.mock, "mock", getenv("API_MODE", "") == config.APIModeMock, "Fabricate tasks locally instead of calling the service")
	root.PersistentFlags().StringSliceVar(&opts.mockArtifacts, "mock-artifacts", []string{config.DefaultMockArtifactURL}, "Artifact URLs returned in mock mode")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "HTTP timeout")

	root.AddCommand(keyCmd(opts, ui))
	root.AddCommand(generateCmd(opts, ui))
	root.AddCommand(statusCmd(opts, ui))

	return root
}

func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)
	b, err := termReadPassword()
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func termReadPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		return []byte(strings.TrimSpace(line)), err
	}
	return term.ReadPassword(fd)
}

func main() {
	ui := newUI()
	root := newRootCmd(ui)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.err("[ERROR]"), err.Error())
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
