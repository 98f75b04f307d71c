package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/report"
)

var rankCmd = &cobra.Command{
	Use:   "rank --job-file FILE RESUME...",
	Short: "Rank resumes against a job description in one go",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("job-file", "f", "", "file with the job description (pdf or text)")
	rankCmd.Flags().Bool("dump", false, "also dump results as json to a temporary file")
	rankCmd.Flags().IntP("concurrency", "c", 1, "how many resumes to process at once")

	rankCmd.MarkFlagRequired("job-file")
	viper.BindPFlag("ingest.concurrency", rankCmd.Flags().Lookup("concurrency"))
}

func runRank(cmd *cobra.Command, locators []string) {
	ctx := context.Background()

	logger, sess := bootstrap(ctx)

	jobFile, _ := cmd.Flags().GetString("job-file")
	doc, err := document.NewFileReader().Read(ctx, jobFile)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	if err := submitJob(ctx, sess, doc.Text, logger); err != nil {
		logger.Fatal("submitting job description", zap.Error(err))
	}

	if err := ingest(ctx, sess, locators, logger); err != nil {
		logger.Fatal("ingesting resumes", zap.Error(err))
	}

	if len(sess.Candidates()) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes could be processed"))
		return
	}

	ranked, err := sess.Score()
	if err != nil {
		logger.Fatal("scoring candidates", zap.Error(err))
	}

	view := report.NewView(sess.ID(), sess.Job(), ranked)
	if err := view.Print(os.Stdout); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := view.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dump results to file", zap.Error(err))
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
	}
}
