package advisor

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
)

const systemPrompt = "You are a trading coach for a paper-trading practice app. " +
	"Review the trader's setup and readiness scores. Be concrete and brief: name " +
	"the biggest risk you see, say whether waiting would cost anything, and never " +
	"pressure the trader to take the trade."

const consultTemplate = `The trader is considering a {{.Direction}} on {{.Symbol}}.
{{- if .HasSetup}}
Planned entry {{printf "%.4g" .Entry}}, stop loss {{printf "%.4g" .StopLoss}}, take profit {{printf "%.4g" .TakeProfit}}, {{.Leverage}}x leverage on {{printf "%.4g" .Margin}} margin.
{{- end}}
{{- if .HasAssessment}}
Readiness score {{.TotalScore}}/100 ({{.Recommendation}}).
Emotional {{printf "%.0f" .Emotional}}, history {{printf "%.0f" .History}}, discipline {{printf "%.0f" .Discipline}}.
{{- end}}
{{- if .Question}}
Their question: {{.Question}}
{{- end}}`

var consultTmpl = template.Must(template.New("consult").Parse(consultTemplate))

type promptData struct {
	Symbol    string
	Direction string

	HasSetup   bool
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	Leverage   int
	Margin     float64

	HasAssessment  bool
	TotalScore     int
	Recommendation string
	Emotional      float64
	History        float64
	Discipline     float64

	Question string
}

func renderPrompt(req ConsultRequest) (string, error) {
	if req.Symbol == "" && req.Setup == nil {
		return "", errors.New("advisor: consult request needs a symbol or a setup")
	}

	data := promptData{Symbol: req.Symbol, Direction: "trade", Question: req.Question}
	if req.Setup != nil {
		data.HasSetup = true
		if data.Symbol == "" {
			data.Symbol = req.Setup.Symbol
		}
		data.Direction = string(req.Setup.Direction)
		data.Entry = req.Setup.Entry
		data.StopLoss = req.Setup.StopLoss
		data.TakeProfit = req.Setup.TakeProfit
		data.Leverage = req.Setup.Leverage
		data.Margin = req.Setup.Margin
	}
	if req.Assessment != nil {
		data.HasAssessment = true
		data.TotalScore = req.Assessment.TotalScore
		data.Recommendation = string(req.Assessment.Recommendation)
		data.Emotional = req.Assessment.Breakdown.Emotional.Score
		data.History = req.Assessment.Breakdown.History.Score
		data.Discipline = req.Assessment.Breakdown.Discipline.Score
	}

	var buf bytes.Buffer
	if err := consultTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("advisor: render prompt: %w", err)
	}
	return buf.String(), nil
}
