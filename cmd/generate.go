package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/authoring"
	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/llm"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Author a new question bank with an LLM",
	Long: `Generate a question bank for a topic. Every generated question is checked
for structure, a single unambiguous answer and duplicates before it is kept,
and the finished bank is validated against the bank schema.

The bank is written to --out, or to stdout when no file is given.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "Subject of the questions (required)")
	generateCmd.Flags().String("audience", "", "Who the questions are for, e.g. \"high school students\"")
	generateCmd.Flags().Int("count", 10, "Number of questions to generate")
	generateCmd.Flags().Int("choices", 4, "Choices per question")
	generateCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	generateCmd.Flags().Bool("avoid-bank", false, "Avoid questions already in the configured bank")
	generateCmd.Flags().String("provider", "", "LLM provider (overrides llm.provider)")
	generateCmd.Flags().String("model", "", "LLM model (overrides llm.model)")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	in := authoring.Input{}
	in.Topic, _ = flags.GetString("topic")
	in.Audience, _ = flags.GetString("audience")
	in.Count, _ = flags.GetInt("count")
	in.Choices, _ = flags.GetInt("choices")
	outPath, _ := flags.GetString("out")
	avoidBank, _ := flags.GetBool("avoid-bank")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	llmCfg := llm.Config{
		Provider: e.cfg.LLM.Provider,
		Model:    e.cfg.LLM.Model,
		APIKey:   e.cfg.LLM.APIKey,
		BaseURL:  e.cfg.LLM.BaseURL,
		Timeout:  e.cfg.LLM.Timeout,
	}
	if p, _ := flags.GetString("provider"); p != "" {
		llmCfg.Provider = p
		llmCfg.Model = ""
	}
	if m, _ := flags.GetString("model"); m != "" {
		llmCfg.Model = m
	}

	provider, err := llm.New(ctx, llmCfg, e.store.EventRepo(), e.logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	if avoidBank {
		qs, err := bank.Load(ctx, e.bankProvider())
		if err != nil {
			return err
		}
		for _, q := range qs {
			in.Avoid = append(in.Avoid, q.Text)
		}
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Generating %d questions on %q with %s (%s)...\n",
		in.Count, in.Topic, provider.Name(), provider.Model())

	gen := authoring.New(provider, authoring.DefaultConfig(), e.logger)
	res, err := gen.Generate(ctx, in)
	if err != nil {
		return err
	}

	for _, r := range res.Rejected {
		fmt.Fprintf(errOut, "  rejected %q: %v\n", truncate(r.Question.Text, 60), r.Err)
	}
	fmt.Fprintf(errOut, "Kept %d of %d questions after %d round(s).\n",
		len(res.Document.Questions), in.Count, res.Rounds)

	if outPath == "" {
		return authoring.Write(cmd.OutOrStdout(), res.Document)
	}
	if err := authoring.WriteFile(outPath, res.Document); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "Wrote %s\n", outPath)
	return nil
}
