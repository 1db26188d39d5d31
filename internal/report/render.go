// Where: internal/report/render.go
// What: JSON and text rendering for competition reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/ui"
)

// WriteJSON renders any report document as indented JSON.
func WriteJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// RenderCompetitions prints the listing as text.
func RenderCompetitions(console *ui.Console, comps []Competition) {
	active := 0
	for _, c := range comps {
		if c.Status == StatusActive {
			active++
		}
	}
	console.Header("Competitions")
	console.Info(fmt.Sprintf("found %d competitions (%d active, %d completed)",
		len(comps), active, len(comps)-active))
	console.Info("")
	for _, c := range comps {
		marker := "DONE"
		if c.Status == StatusActive {
			marker = "ACTIVE"
		}
		console.Info(fmt.Sprintf("[%s] %s", marker, c.Title))
		deadline := "none"
		if c.Deadline != nil {
			deadline = c.Deadline.Format(time.RFC3339)
		}
		console.ItemPlain(fmt.Sprintf("slug: %s  category: %s  deadline: %s", c.Slug, c.Category, deadline))
		if c.Reward != "" {
			console.ItemPlain(fmt.Sprintf("reward: %s  teams: %d", c.Reward, c.TeamCount))
		}
	}
}

// RenderDetails prints a single-competition report as text.
func RenderDetails(console *ui.Console, d *Details) {
	console.Header("Competition " + d.Slug)
	console.Item("url", d.URL)

	console.Header("Data Files")
	if len(d.Files) == 0 {
		console.ItemPlain("none listed")
	}
	for _, f := range d.Files {
		console.ItemPlain(fmt.Sprintf("%s (%s)", f.Name, f.HumanSize))
	}

	console.Header("Leaderboard")
	if len(d.LeaderboardTop) == 0 {
		console.ItemPlain("unavailable")
	}
	for _, entry := range d.LeaderboardTop {
		console.ItemPlain(fmt.Sprintf("#%d %s (%s)", entry.Rank, entry.Team, entry.Score))
	}

	console.Header("Top Notebooks")
	for _, nb := range d.TopNotebooks {
		line := fmt.Sprintf("%s (%d votes)", nb.Title, nb.Votes)
		if nb.IsWriteup {
			line += " [writeup]"
		}
		console.ItemPlain(line)
	}
}
