package tui

import (
	"context"
	"fmt"

	"karat/internal/api"
	"karat/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var pipelineStageFilters = []string{
	"", api.StageLead, api.StageContacted, api.StageNegotiation,
	api.StageClosedWon, api.StageClosedLost,
}

// stageOrder is the forward transition a deal takes through "t".
var stageOrder = []string{
	api.StageLead, api.StageContacted, api.StageNegotiation, api.StageClosedWon,
}

// pipelineSummary holds the stat cards above the pipeline table.
type pipelineSummary struct {
	TotalValue float64
	Won        int
	Lost       int
	Conversion float64
}

// summarizePipeline derives the pipeline stats. Total value sums every
// deal's expected value with non-numeric entries counting as zero;
// conversion is won deals over all deals.
func summarizePipeline(deals []api.Deal) pipelineSummary {
	s := pipelineSummary{
		TotalValue: stats.Sum(deals, func(d api.Deal) float64 {
			return d.ExpectedValue.Float()
		}),
		Won: stats.Count(deals, func(d api.Deal) bool {
			return d.Stage == api.StageClosedWon
		}),
		Lost: stats.Count(deals, func(d api.Deal) bool {
			return d.Stage == api.StageClosedLost
		}),
	}
	s.Conversion = stats.Rate(s.Won, len(deals))
	return s
}

func (m Model) pipelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.pipeline.Records()
	switch msg.String() {
	case "f":
		next := nextFilter(pipelineStageFilters, m.pipeline.Filter("stage"))
		m.pipeline.SetFilter("stage", next)
		return m, m.pipeline.Load()

	case "n":
		cmd := m.openForm(m.dealForm(nil))
		return m, cmd

	case "e":
		if m.cursor() < len(records) {
			d := records[m.cursor()]
			cmd := m.openForm(m.dealForm(&d))
			return m, cmd
		}

	case "t":
		if m.cursor() < len(records) {
			d := records[m.cursor()]
			if next := nextStage(d.Stage); next != "" {
				return m, m.mutate(PipelineView, "Deal moved to "+next+".", func(ctx context.Context) (*api.Response, error) {
					return m.client.TransitionDeal(ctx, d.ID, next)
				})
			}
		}

	case "w":
		if m.cursor() < len(records) {
			d := records[m.cursor()]
			return m, m.mutate(PipelineView, "Deal marked lost.", func(ctx context.Context) (*api.Response, error) {
				return m.client.TransitionDeal(ctx, d.ID, api.StageClosedLost)
			})
		}

	case "d":
		if m.cursor() < len(records) {
			d := records[m.cursor()]
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete deal %q?", d.Title),
				action: func() tea.Cmd {
					return m.mutate(PipelineView, "Deal deleted.", func(ctx context.Context) (*api.Response, error) {
						return m.client.DeleteDeal(ctx, d.ID)
					})
				},
			}
		}
	}
	return m, nil
}

// nextStage returns the following pipeline stage, or "" for terminal
// stages.
func nextStage(stage string) string {
	for i, s := range stageOrder {
		if s == stage && i < len(stageOrder)-1 {
			return stageOrder[i+1]
		}
	}
	return ""
}

func (m Model) dealForm(existing *api.Deal) *formState {
	f := &formState{
		title: "New Deal",
		fields: []formField{
			newField("client_id", "Client ID"),
			newField("title", "Title"),
			newField("stage", "Stage (lead/contacted/negotiation)"),
			newField("expected_value", "Expected value"),
			newField("expected_close_date", "Expected close (YYYY-MM-DD)"),
		},
	}
	if existing != nil {
		f.title = "Edit Deal"
		setField(f, "client_id", existing.CustomerID.String())
		setField(f, "title", existing.Title)
		setField(f, "stage", existing.Stage)
		setField(f, "expected_value", fmt.Sprintf("%g", existing.ExpectedValue.Float()))
		if !existing.ExpectedCloseDate.IsZero() {
			setField(f, "expected_close_date", existing.ExpectedCloseDate.Format("2006-01-02"))
		}
	}

	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.DealInput{
			CustomerID:    api.ID(values["client_id"]),
			Title:         values["title"],
			Stage:         values["stage"],
			ExpectedValue: parseFloatOrZero(values["expected_value"]),
			ExpectedClose: values["expected_close_date"],
		}
		if existing == nil {
			return m.mutate(PipelineView, "Deal created.", func(ctx context.Context) (*api.Response, error) {
				return client.CreateDeal(ctx, input)
			})
		}
		id := existing.ID
		return m.mutate(PipelineView, "Deal updated.", func(ctx context.Context) (*api.Response, error) {
			return client.UpdateDeal(ctx, id, input)
		})
	}
	return f
}

func (m Model) renderPipeline() string {
	s := m.styles
	summary := summarizePipeline(m.pipeline.Records())

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Pipeline Value", stats.FormatINR(summary.TotalValue)),
		m.statCard("Won", fmt.Sprintf("%d", summary.Won)),
		m.statCard("Lost", fmt.Sprintf("%d", summary.Lost)),
		m.statCard("Conversion", stats.FormatPercent(summary.Conversion)),
	)

	table := m.newPageTable(
		[]string{"Title", "Client", "Stage", "Value", "Close"},
		[]int{26, 20, 14, 14, 12},
	)
	for _, d := range m.pipeline.Records() {
		closeBy := ""
		if !d.ExpectedCloseDate.IsZero() {
			closeBy = d.ExpectedCloseDate.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{
			d.Title, d.CustomerName,
			s.StatusBadge(d.Stage),
			stats.FormatINR(d.ExpectedValue.Float()),
			closeBy,
		})
	}

	footer := ""
	if f := m.pipeline.Filter("stage"); f != "" {
		footer = "filter: " + f
	}
	return m.pageLayout(cards, table, footer,
		"n new  e edit  t advance  w mark lost  d delete  f filter")
}
