package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BarryMolina/mathsfun-sub001/internal/facts"
	"github.com/BarryMolina/mathsfun-sub001/internal/quiz"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui/theme"
)

func (a *App) showStats(ctx context.Context) error {
	progress, err := a.store.Quizzes().UserProgress(ctx, a.user.ID)
	if err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("📊 "+a.user.DisplayName+"'s Stats") + "\n\n")

	if progress.TotalSessions == 0 {
		b.WriteString("No finished quizzes yet. Pick one from the menu and dive in!\n")
		fmt.Fprintln(a.out, "\n"+b.String())
		return nil
	}

	stat := func(label, value string) {
		b.WriteString(theme.StatLabel.Render(fmt.Sprintf("%-22s", label)))
		b.WriteString(theme.StatValue.Render(value) + "\n")
	}
	stat("Quizzes finished:", fmt.Sprintf("%d", progress.TotalSessions))
	stat("Problems answered:", fmt.Sprintf("%d", progress.TotalProblems))
	stat("Correct answers:", fmt.Sprintf("%d", progress.TotalCorrect))
	stat("Overall accuracy:", fmt.Sprintf("%.1f%%", progress.OverallAccuracy))
	stat("Best quiz accuracy:", fmt.Sprintf("%.1f%%", progress.BestAccuracy))
	stat("Average quiz time:", quiz.FormatDuration(time.Duration(progress.AvgSessionSeconds*float64(time.Second))))

	if len(progress.RecentSessions) > 0 {
		b.WriteString("\n" + theme.Title.Render("Recent quizzes") + "\n")
		for _, s := range progress.RecentSessions {
			line := fmt.Sprintf("  %s  %-10s  %d/%d correct (%.0f%%)",
				s.StartTime.Format("Jan 02"), s.QuizType,
				s.CorrectAnswers, s.TotalProblems, s.Accuracy())
			b.WriteString(line + "\n")
		}
	}

	if section := a.masterySection(ctx); section != "" {
		b.WriteString("\n" + section)
	}

	fmt.Fprintln(a.out, "\n"+theme.Card.Render(strings.TrimRight(b.String(), "\n")))
	return nil
}

// masterySection summarizes fact tracking: counts per mastery level and
// the weakest facts worth a look.
func (a *App) masterySection(ctx context.Context) string {
	perfs, err := a.store.Facts().AllPerformances(ctx, a.user.ID)
	if err != nil || len(perfs) == 0 {
		return ""
	}

	counts := map[facts.MasteryLevel]int{}
	for _, p := range perfs {
		counts[p.Mastery()]++
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Addition facts") + "\n")
	b.WriteString(fmt.Sprintf("  🌟 mastered: %d   📈 practicing: %d   🌱 learning: %d\n",
		counts[facts.MasteryMastered], counts[facts.MasteryPracticing], counts[facts.MasteryLearning]))

	weakest := append([]*facts.Performance(nil), perfs...)
	sort.Slice(weakest, func(i, j int) bool {
		return weakest[i].Accuracy() < weakest[j].Accuracy()
	})
	shown := 0
	for _, p := range weakest {
		if p.Accuracy() >= 100 || shown >= 3 {
			break
		}
		b.WriteString(fmt.Sprintf("  🎯 %s  %.0f%% over %d tries\n",
			strings.ReplaceAll(p.FactKey, "+", " + "), p.Accuracy(), p.TotalAttempts))
		shown++
	}
	return b.String()
}
