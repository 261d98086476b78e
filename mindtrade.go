package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"mindtrade-api/internal/cli"
	"mindtrade-api/internal/config"
	"mindtrade-api/internal/svc"
	"mindtrade-api/pkg/assess"
	"mindtrade-api/pkg/journal"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/position"
	"mindtrade-api/pkg/trade"
)

var (
	configFile = flag.String("f", "etc/mindtrade.yaml", "the config file")
	setupFile  = flag.String("setup", "", "submission file describing the setup and self-report")
)

// submissionFile is the yaml shape of one submission.
type submissionFile struct {
	UserID           string  `yaml:"user_id"`
	AvailableBalance float64 `yaml:"available_balance"`
	Symbol           string  `yaml:"symbol"`
	Override         bool    `yaml:"override"`
	ConfirmReprice   bool    `yaml:"confirm_reprice"`

	Setup struct {
		Direction  string `yaml:"direction"`
		Mode       string `yaml:"mode"`
		Entry      string `yaml:"entry_price"`
		StopLoss   string `yaml:"stop_loss"`
		TakeProfit string `yaml:"take_profit"`
		Margin     string `yaml:"margin"`
		Leverage   int    `yaml:"leverage"`
	} `yaml:"setup"`

	Pattern *struct {
		Entry      float64 `yaml:"entry_price"`
		StopLoss   float64 `yaml:"stop_loss"`
		TakeProfit float64 `yaml:"take_profit"`
	} `yaml:"pattern"`

	Emotional struct {
		Mood         string `yaml:"mood"`
		EnergyLevel  int    `yaml:"energy_level"`
		SleepQuality string `yaml:"sleep_quality"`
		FomoLevel    int    `yaml:"fomo_level"`
		RevengeUrge  int    `yaml:"revenge_urge"`
	} `yaml:"emotional"`
}

func main() {
	flag.Parse()

	if *setupFile == "" {
		fmt.Fprintln(os.Stderr, "usage: mindtrade -f etc/mindtrade.yaml -setup submission.yaml")
		os.Exit(2)
	}

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	svcCtx := svc.NewServiceContext(*cfg)

	req, err := loadSubmission(*setupFile)
	if err != nil {
		log.Fatalf("load submission: %v", err)
	}

	result, err := svcCtx.Flow.Submit(context.Background(), req)
	if err != nil {
		log.Fatalf("submit: %v", err)
	}

	printResult(result)

	if svcCtx.Journal != nil {
		path, err := svcCtx.Journal.WriteSession(sessionRecord(req, result))
		if err != nil {
			log.Printf("warning: write journal: %v", err)
		} else {
			fmt.Printf("Session journaled to %s\n", path)
		}
	}

	if !result.Accepted {
		os.Exit(1)
	}
}

func loadSubmission(path string) (trade.SubmitRequest, error) {
	var req trade.SubmitRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}

	var file submissionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return req, fmt.Errorf("parse %s: %w", path, err)
	}

	req = trade.SubmitRequest{
		Account: trade.Account{
			UserID:           file.UserID,
			AvailableBalance: file.AvailableBalance,
		},
		Symbol: file.Symbol,
		Raw: position.RawSetup{
			Symbol:     file.Symbol,
			Direction:  file.Setup.Direction,
			Entry:      file.Setup.Entry,
			StopLoss:   file.Setup.StopLoss,
			TakeProfit: file.Setup.TakeProfit,
			Margin:     file.Setup.Margin,
			Leverage:   file.Setup.Leverage,
			Mode:       file.Setup.Mode,
		},
		Emotional: mindset.EmotionalResponse{
			Mood:         mindset.Mood(file.Emotional.Mood),
			EnergyLevel:  file.Emotional.EnergyLevel,
			SleepQuality: mindset.SleepQuality(file.Emotional.SleepQuality),
			FomoLevel:    file.Emotional.FomoLevel,
			RevengeUrge:  file.Emotional.RevengeUrge,
		},
		Override:       file.Override,
		ConfirmReprice: file.ConfirmReprice,
	}
	if file.Pattern != nil {
		req.PatternLevels = &assess.Levels{
			Entry:      file.Pattern.Entry,
			StopLoss:   file.Pattern.StopLoss,
			TakeProfit: file.Pattern.TakeProfit,
		}
	}
	return req, nil
}

func printResult(result *trade.SubmitResult) {
	if result.Mindset != nil {
		fmt.Printf("Mindset score: %d (%s)\n", result.Mindset.TotalScore, result.Mindset.Recommendation)
		for _, suggestion := range result.Mindset.Suggestions {
			fmt.Printf("  - %s\n", suggestion)
		}
	}
	if result.Setup != nil {
		fmt.Printf("Setup quality: %d\n", result.Setup.Score)
		for _, warning := range result.Setup.Warnings {
			fmt.Printf("  ! %s\n", warning)
		}
	}

	if !result.Accepted {
		fmt.Printf("Submission rejected: %s\n", result.Reason)
		return
	}

	rec := result.Record
	fmt.Printf("Opened %s %s %s @ %.4f (qty %.4f, liq %.4f)\n",
		result.OrderType, rec.Direction, rec.Symbol, rec.EntryPrice, rec.Quantity, rec.Liquidation)
}

func sessionRecord(req trade.SubmitRequest, result *trade.SubmitResult) *journal.SessionRecord {
	rec := &journal.SessionRecord{
		UserID:     req.Account.UserID,
		Symbol:     req.Symbol,
		Accepted:   result.Accepted,
		Reason:     result.Reason,
		Overridden: req.Override,
	}
	if result.Setup != nil {
		score := result.Setup.Score
		rec.SetupScore = &score
	}
	if result.Mindset != nil {
		rec.MindsetScore = result.Mindset.TotalScore
		rec.Recommendation = string(result.Mindset.Recommendation)
		rec.Breakdown = map[string]any{
			"emotional":  result.Mindset.Breakdown.Emotional.Weighted,
			"history":    result.Mindset.Breakdown.History.Weighted,
			"discipline": result.Mindset.Breakdown.Discipline.Weighted,
		}
		if len(result.Mindset.Estimated) > 0 {
			rec.Extra = map[string]any{"estimated": result.Mindset.Estimated}
		}
	}
	return rec
}
