package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/extraction"
	"github.com/spigell/resume-ranker/internal/report"
	"github.com/spigell/resume-ranker/internal/scoring"
	"github.com/spigell/resume-ranker/internal/session"
)

const (
	PromptJob     = "Insert job description"
	PromptResumes = "Insert resumes"
	PromptScore   = "Calculate scores"
	PromptShow    = "Show ranked results"
	PromptDump    = "Dump results to file"
	PromptReset   = "Reset session"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var menu = promptui.Select{
	Label: "Choose an action",
	Items: []string{PromptJob, PromptResumes, PromptScore, PromptShow, PromptDump, PromptReset, PromptExit},
	Size:  7,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start an interactive ranking session",
	Run: func(_ *cobra.Command, _ []string) {
		runSession()
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession() {
	ctx := context.Background()

	logger, sess := bootstrap(ctx)
	logger.Info("session started", zap.String("session_id", sess.ID()))

	for {
		_, action, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, sess, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}

			var pre *scoring.PreconditionError
			if errors.As(err, &pre) {
				logger.Warn("action is not available yet", zap.String("action", action), zap.Error(err))
				continue
			}

			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}

			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, sess *session.Session, logger *zap.Logger) error {
	switch action {
	case PromptJob:
		text, err := readJobDescription()
		if err != nil {
			return err
		}
		return submitJob(ctx, sess, text, logger)
	case PromptResumes:
		locators, err := readLocators()
		if err != nil {
			return err
		}
		return ingest(ctx, sess, locators, logger)
	case PromptScore:
		ranked, err := sess.Score()
		if err != nil {
			return err
		}
		return report.NewView(sess.ID(), sess.Job(), ranked).Print(os.Stdout)
	case PromptShow:
		ranked := sess.Ranked()
		if len(ranked) == 0 {
			logger.Info("no ranked results yet", zap.String("hint", "calculate scores first"))
			return nil
		}
		return report.NewView(sess.ID(), sess.Job(), ranked).Print(os.Stdout)
	case PromptDump:
		ranked := sess.Ranked()
		if len(ranked) == 0 {
			logger.Info("no ranked results yet", zap.String("hint", "calculate scores first"))
			return nil
		}
		filename, err := report.NewView(sess.ID(), sess.Job(), ranked).DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptReset:
		sess.Reset()
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// readJobDescription collects lines until an empty one and joins them with spaces.
func readJobDescription() (string, error) {
	var lines []string
	for {
		linePrompt := promptui.Prompt{Label: "Job description (empty line to finish)"}
		line, err := linePrompt.Run()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, " "), nil
		}
		lines = append(lines, line)
	}
}

func readLocators() ([]string, error) {
	pathsPrompt := promptui.Prompt{Label: "Resume paths (comma separated)"}
	input, err := pathsPrompt.Run()
	if err != nil {
		return nil, err
	}
	return splitLocators(input), nil
}

func splitLocators(input string) []string {
	var locators []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			locators = append(locators, part)
		}
	}
	return locators
}

func submitJob(ctx context.Context, sess *session.Session, text string, logger *zap.Logger) error {
	job, err := sess.SubmitJob(ctx, text)
	if err != nil {
		var failure *extraction.Failure
		if errors.As(err, &failure) {
			logger.Warn("job requirements could not be extracted, every candidate will score 0",
				zap.Error(err),
			)
			return nil
		}
		return err
	}

	if job.Empty() {
		logger.Warn("job profile is empty", zap.String("hint", "the description did not name skills or experience"))
	}
	return nil
}

func ingest(ctx context.Context, sess *session.Session, locators []string, logger *zap.Logger) error {
	res, err := sess.IngestResumes(ctx, locators)
	if err != nil {
		return err
	}

	for _, failure := range res.Failures {
		logger.Warn("resume skipped", zap.String("locator", failure.Locator), zap.Error(failure.Err))
	}

	logger.Info("candidates in session", zap.Int("added", len(res.Added)), zap.Int("total", len(sess.Candidates())))
	return nil
}
