package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/app/poller"
	"github.com/supchaser/postergen/internal/app/relay"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/validate"
)

type generateFlags struct {
	title       string
	subTitle    string
	body        string
	promptZH    string
	promptEN    string
	ratio       string
	style       string
	styleWeight float64
	ctrlRatio   float64
	ctrlStep    float64
	num         int
	mode        string
	aux         string

	out         string
	interval    time.Duration
	maxAttempts int
	forceHTTPS  bool
}

func (f *generateFlags) request(cmd *cobra.Command) (models.GenerationRequest, error) {
	req := models.GenerationRequest{
		Title:               f.title,
		SubTitle:            f.subTitle,
		BodyText:            f.body,
		PromptZH:            f.promptZH,
		PromptEN:            f.promptEN,
		AspectRatio:         models.AspectRatio(f.ratio),
		Style:               f.style,
		Mode:                models.GenerateMode(f.mode),
		Count:               f.num,
		AuxiliaryParameters: f.aux,
	}

	flags := cmd.Flags()
	if flags.Changed("style-weight") {
		v := f.styleWeight
		req.StyleWeight = &v
	}
	if flags.Changed("ctrl-ratio") {
		v := f.ctrlRatio
		req.CtrlRatio = &v
	}
	if flags.Changed("ctrl-step") {
		v := f.ctrlStep
		req.CtrlStep = &v
	}

	if err := validate.NormalizeGenerationRequest(&req); err != nil {
		return req, err
	}
	return req, nil
}

func newSpinner(w io.Writer, suffix string) *spinner.Spinner {
	spin := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(w))
	spin.Suffix = suffix
	return spin
}

// waitForOutcome blocks until the poller reports a terminal outcome or ctx
// ends.
func waitForOutcome(ctx context.Context, p *poller.Poller, taskID string) (poller.Outcome, error) {
	done := make(chan poller.Outcome, 1)
	h := p.Start(ctx, taskID, func(out poller.Outcome) {
		done <- out
	})
	defer h.Cancel()

	select {
	case out := <-done:
		return out, nil
	case <-ctx.Done():
		return poller.Outcome{}, ctx.Err()
	}
}

func outcomeError(out poller.Outcome) error {
	switch out.State {
	case poller.StateSucceeded:
		return nil
	case poller.StateTimedOut:
		return fmt.Errorf("task %s is still running after %d checks", out.TaskID, out.Attempts)
	default:
		return fmt.Errorf("task %s: %w", out.TaskID, out.Err)
	}
}

// downloadArtifacts saves every URL into dir and returns the written paths.
// A failed download is reported and skipped.
func downloadArtifacts(ctx context.Context, r *relay.Relay, urls []string, dir string, w io.Writer, ui *ui) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	bar := progressbar.NewOptions(len(urls),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Downloading posters"),
		progressbar.OptionSetWidth(18),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	stamp := time.Now().UnixMilli()
	var paths []string
	for i, u := range urls {
		img, err := r.Fetch(ctx, u)
		if err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", ui.warn("[WARN]"), u, err)
			bar.Add(1)
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("poster-%d-%d%s", i+1, stamp, relay.FileExt(img.ContentType)))
		if err := os.WriteFile(path, img.Data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
		bar.Add(1)
	}
	bar.Finish()

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: none of %d posters could be downloaded", errs.ErrArtifactLoad, len(urls))
	}
	return paths, nil
}

func generateCmd(opts *options, ui *ui) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate posters and wait for the result",
		Example: "postergen generate --title \"Spring Sale\" --ratio 9:16 --num 2 --out ./posters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			creds := opts.store()
			if creds.Get(ctx) == "" {
				return fmt.Errorf("%w (run `postergen key set`)", errs.ErrPrecondition)
			}
			tc := opts.taskClient(creds)

			spin := newSpinner(out, " Submitting poster request...")
			spin.Start()
			task, err := tc.Submit(ctx, req)
			spin.Stop()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Task submitted: %s\n", ui.ok("[OK]"), task.ID)

			p := poller.New(tc, poller.RealScheduler, poller.Policy{
				Interval:         f.interval,
				MaxAttempts:      f.maxAttempts,
				MaxFetchFailures: poller.DefaultMaxFetchFailures,
			})

			spin = newSpinner(out, " Waiting for posters...")
			spin.Start()
			outcome, err := waitForOutcome(ctx, p, task.ID)
			spin.Stop()
			if err != nil {
				return err
			}
			if err := outcomeError(outcome); err != nil {
				return err
			}

			fmt.Fprintf(out, "%s %d poster(s) ready %s\n",
				ui.ok("[OK]"), len(outcome.Result.ArtifactURLs),
				ui.dim(fmt.Sprintf("(%d checks)", outcome.Fetches)))
			for i, u := range outcome.Result.ArtifactURLs {
				fmt.Fprintf(out, "  %s %s\n", ui.info(fmt.Sprintf("%d.", i+1)), u)
			}

			if f.out == "" {
				return nil
			}
			paths, err := downloadArtifacts(ctx, relay.New(opts.httpClient(), f.forceHTTPS), outcome.Result.ArtifactURLs, f.out, out, ui)
			for _, path := range paths {
				fmt.Fprintf(out, "%s Saved %s\n", ui.ok("[OK]"), path)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "Poster title (required, up to 30 characters)")
	flags.StringVar(&f.subTitle, "sub-title", "", "Subtitle")
	flags.StringVar(&f.body, "body", "", "Body text")
	flags.StringVar(&f.promptZH, "prompt-zh", "", "Prompt in Chinese")
	flags.StringVar(&f.promptEN, "prompt-en", "", "Prompt in English")
	flags.StringVar(&f.ratio, "ratio", string(models.AspectPortrait), "Aspect ratio (16:9 or 9:16)")
	flags.StringVar(&f.style, "style", models.StyleNone, "Style from the LoRA catalog")
	flags.Float64Var(&f.styleWeight, "style-weight", 0, "Style weight [0,1]")
	flags.Float64Var(&f.ctrlRatio, "ctrl-ratio", 0, "Control ratio [0,1]")
	flags.Float64Var(&f.ctrlStep, "ctrl-step", 0, "Control step [0.1,1]")
	flags.IntVar(&f.num, "num", 1, "Number of posters (1-4)")
	flags.StringVar(&f.mode, "mode", string(models.ModeGenerate), "Generate mode (generate, sr, hrf)")
	flags.StringVar(&f.aux, "aux", "", "Auxiliary parameters from a previous result")
	flags.StringVar(&f.out, "out", "", "Download posters into this directory")
	flags.DurationVar(&f.interval, "interval", poller.DefaultInterval, "Polling interval")
	flags.IntVar(&f.maxAttempts, "max-attempts", poller.DefaultMaxAttempts, "Polling attempts before giving up")
	flags.BoolVar(&f.forceHTTPS, "force-https", true, "Download artifacts over https")

	return cmd
}

func statusCmd(opts *options, ui *ui) *cobra.Command {
	return &cobra.Command{
		Use:   "status <taskID>",
		Short: "Fetch the current state of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tc := opts.taskClient(opts.store())

			spin := newSpinner(out, " Fetching task...")
			spin.Start()
			result, err := tc.FetchResult(cmd.Context(), args[0])
			spin.Stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s %s\n", ui.title("Task"), result.TaskID)
			fmt.Fprintf(out, "  status:    %s\n", result.Status)
			if result.SubmitTime != "" {
				fmt.Fprintf(out, "  submitted: %s\n", result.SubmitTime)
			}
			if result.EndTime != "" {
				fmt.Fprintf(out, "  finished:  %s\n", result.EndTime)
			}
			if result.Message != "" {
				fmt.Fprintf(out, "  message:   %s\n", ui.warn(result.Message))
			}
			for i, u := range result.ArtifactURLs {
				fmt.Fprintf(out, "  %s %s\n", ui.info(fmt.Sprintf("%d.", i+1)), u)
			}
			return nil
		},
	}
}
