package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/BarryMolina/mathsfun-sub001/internal/facts"
	"github.com/BarryMolina/mathsfun-sub001/internal/problemgen"
	"github.com/BarryMolina/mathsfun-sub001/internal/quiz"
	"github.com/BarryMolina/mathsfun-sub001/internal/store"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui/theme"
)

const reviewBatchSize = 20

func (a *App) runAddition(ctx context.Context) error {
	p := ui.NewPrompter(a.in, a.out)

	fmt.Fprintln(a.out, "\n"+theme.Title.Render("➕ Addition Quiz"))
	for d := problemgen.DifficultyMin; d <= problemgen.DifficultyMax; d++ {
		fmt.Fprintf(a.out, "  %d. %s\n", d, d.Description())
	}

	low, err := p.Int("Lowest difficulty", 1, int(problemgen.DifficultyMin), int(problemgen.DifficultyMax))
	if err != nil {
		return err
	}
	high, err := p.Int("Highest difficulty", low, low, int(problemgen.DifficultyMax))
	if err != nil {
		return err
	}
	count, err := p.Int("How many problems? (0 = keep going until you stop)", 10, 0, 1000)
	if err != nil {
		return err
	}

	gen := problemgen.NewRangeGenerator(problemgen.Difficulty(low), problemgen.Difficulty(high), count, nil)

	rec := store.NewSessionRecorder(a.store.Quizzes(), a.tracker, a.log,
		a.user.ID, store.QuizTypeAddition, high)
	return a.runQuiz(ctx, gen, rec)
}

func (a *App) runTables(ctx context.Context) error {
	p := ui.NewPrompter(a.in, a.out)

	fmt.Fprintln(a.out, "\n"+theme.Title.Render("📋 Addition Tables"))
	fmt.Fprintln(a.out, "Practice every pair in a range, like the 1 to 5 tables.")

	low, err := p.Int("Start of range", 1, 1, 100)
	if err != nil {
		return err
	}
	high, err := p.Int("End of range", max(low, 5), low, 100)
	if err != nil {
		return err
	}
	randomize, err := p.YesNo("Shuffle the problems?", true)
	if err != nil {
		return err
	}

	gen := problemgen.NewTableGenerator(low, high, randomize, nil)

	rec := store.NewSessionRecorder(a.store.Quizzes(), a.tracker, a.log,
		a.user.ID, store.QuizTypeTables, 0)
	return a.runQuiz(ctx, gen, rec)
}

func (a *App) runReview(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n"+theme.Title.Render("🔁 Review Tricky Facts"))

	perfs, err := a.tracker.DueFacts(ctx, a.user.ID, reviewBatchSize)
	if err != nil {
		return fmt.Errorf("loading due facts: %w", err)
	}
	if len(perfs) == 0 {
		perfs, err = a.tracker.StrugglingFacts(ctx, a.user.ID, reviewBatchSize)
		if err != nil {
			return fmt.Errorf("loading struggling facts: %w", err)
		}
	}
	if len(perfs) == 0 {
		fmt.Fprintln(a.out, "🎉 Nothing to review! Do a quiz or two and come back later.")
		return nil
	}

	problems := make([]problemgen.Problem, 0, len(perfs))
	for _, perf := range perfs {
		x, y, err := facts.ParseFactKey(perf.FactKey)
		if err != nil {
			a.log.Warn("skipping bad fact key", zap.String("key", perf.FactKey), zap.Error(err))
			continue
		}
		problems = append(problems, problemgen.NewProblem(x, y))
	}
	if len(problems) == 0 {
		fmt.Fprintln(a.out, "🎉 Nothing to review! Do a quiz or two and come back later.")
		return nil
	}

	fmt.Fprintf(a.out, "Found %d facts to practice.\n", len(problems))
	gen := problemgen.NewReviewSet(problems, true, nil)

	rec := store.NewSessionRecorder(a.store.Quizzes(), a.tracker, a.log,
		a.user.ID, store.QuizTypeReview, 0)
	return a.runQuiz(ctx, gen, rec)
}

func (a *App) runQuiz(ctx context.Context, gen problemgen.Generator, rec quiz.Recorder) error {
	runner := quiz.NewRunner(a.in, a.out, rec)
	outcome, err := runner.Run(ctx, gen)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	summary := quiz.BuildSummary(outcome, gen)
	quiz.WriteReport(a.out, summary)

	if a.chat != nil && summary.Attempted > 0 {
		if comment, err := a.chat.Encourage(ctx, summary); err == nil {
			fmt.Fprintln(a.out, "\n"+theme.Hint.Render("💬 "+comment))
		}
	}
	return nil
}
