// Where: internal/report/competitions.go
// What: Recent-competition listing over the MCP surface.
// Why: Aggregate per-category searches into one deduplicated report.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/mcp"
	"github.com/rs/zerolog/log"
)

// Categories queried for the competition listing. The empty string queries
// without a category filter and catches uncategorized competitions.
var Categories = []string{"featured", "research", "playground", "gettingStarted", "recruitment", "masters", ""}

// Status of a competition relative to its deadline.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Competition is one entry of the listing.
type Competition struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Reward      string     `json:"reward,omitempty"`
	TeamCount   int        `json:"team_count"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Status      string     `json:"status"`
	URL         string     `json:"url"`
}

// ToolCaller is the slice of the MCP client the report package needs.
type ToolCaller interface {
	CallTool(ctx context.Context, tool string, args map[string]any, set creds.Set) (dispatch.Result, error)
}

// Service produces competition reports.
type Service struct {
	Tools ToolCaller
	Creds creds.Set

	now func() time.Time
}

// NewService wires a report service over a tool caller.
func NewService(tools ToolCaller, set creds.Set) *Service {
	return &Service{Tools: tools, Creds: set, now: time.Now}
}

// wireTag accepts both bare-string and object-shaped tags.
type wireTag struct {
	Name string
}

func (t *wireTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		Ref  string `json:"ref"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Name != "" {
		t.Name = obj.Name
	} else {
		t.Name = obj.Ref
	}
	return nil
}

type wireCompetition struct {
	Ref         string    `json:"ref"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Reward      string    `json:"reward"`
	TeamCount   int       `json:"teamCount"`
	Deadline    *wireTime `json:"deadline"`
	EnabledDate *wireTime `json:"enabledDate"`
	DateCreated *wireTime `json:"dateCreated"`
	Tags        []wireTag `json:"tags"`
}

// wireTime tolerates the timestamp layouts the endpoint emits.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// Competitions lists competitions created or closing within the lookback
// window, deduplicated across category queries, active first.
func (s *Service) Competitions(ctx context.Context, lookbackDays int) ([]Competition, error) {
	seen := map[string]bool{}
	var out []Competition

	for _, category := range Categories {
		fields := map[string]any{
			"sortBy": "RecentlyCreated", "hasSortBy": true,
			"pageSize": 50, "hasPageSize": true,
		}
		if category != "" {
			fields["category"] = category
			fields["hasCategory"] = true
		}
		res, err := s.Tools.CallTool(ctx, "search_competitions", map[string]any{"request": fields}, s.Creds)
		if err != nil {
			return nil, fmt.Errorf("search_competitions: %w", err)
		}
		if res.Classification != dispatch.Success {
			log.Warn().Str("category", category).Str("output", res.RawOutput).Msg("competition search failed")
			continue
		}
		wire, err := decodeCompetitions(res.Payload)
		if err != nil {
			log.Warn().Str("category", category).Err(err).Msg("competition payload undecodable")
			continue
		}
		for _, w := range wire {
			comp := w.toCompetition(category)
			if comp.Slug == "" || seen[comp.Slug] {
				continue
			}
			seen[comp.Slug] = true
			out = append(out, comp)
		}
	}

	cutoff := s.now().UTC().AddDate(0, 0, -lookbackDays)
	filtered := out[:0]
	for _, comp := range out {
		if !withinLookback(comp, cutoff) {
			continue
		}
		comp.Status = classifyStatus(comp, s.now().UTC())
		filtered = append(filtered, comp)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Status != filtered[j].Status {
			return filtered[i].Status == StatusActive
		}
		return deadlineKey(filtered[i]) < deadlineKey(filtered[j])
	})
	return filtered, nil
}

func decodeCompetitions(payload json.RawMessage) ([]wireCompetition, error) {
	text, err := mcp.ResultText(payload)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Competitions []wireCompetition `json:"competitions"`
	}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	return doc.Competitions, nil
}

func (w wireCompetition) toCompetition(queriedCategory string) Competition {
	slug := extractSlug(w.Ref)
	comp := Competition{
		Slug:      slug,
		Title:     w.Title,
		Category:  w.Category,
		Reward:    w.Reward,
		TeamCount: w.TeamCount,
		URL:       "https://www.kaggle.com/competitions/" + slug,
	}
	if comp.Category == "" {
		comp.Category = queriedCategory
	}
	if w.Deadline != nil {
		t := w.Deadline.Time
		comp.Deadline = &t
	}
	created := w.EnabledDate
	if created == nil {
		created = w.DateCreated
	}
	if created != nil {
		t := created.Time
		comp.DateCreated = &t
	}
	for _, tag := range w.Tags {
		if tag.Name != "" {
			comp.Tags = append(comp.Tags, tag.Name)
		}
	}
	return comp
}

// extractSlug takes the last path segment of a competition ref.
func extractSlug(ref string) string {
	trimmed := strings.Trim(strings.TrimSpace(ref), "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}

// isHackathon reports whether the competition is judge-evaluated.
func isHackathon(comp Competition) bool {
	for _, tag := range comp.Tags {
		if strings.EqualFold(tag, "hackathon") {
			return true
		}
	}
	return false
}

// classifyStatus marks a competition completed once its deadline passes.
// Hackathons have no leaderboard and stay active past the deadline until
// winners are announced, which cannot be detected here.
func classifyStatus(comp Competition, now time.Time) string {
	if isHackathon(comp) {
		return StatusActive
	}
	if comp.Deadline == nil {
		return StatusActive
	}
	if comp.Deadline.Before(now) {
		return StatusCompleted
	}
	return StatusActive
}

func withinLookback(comp Competition, cutoff time.Time) bool {
	for _, t := range []*time.Time{comp.Deadline, comp.DateCreated} {
		if t != nil && !t.Before(cutoff) {
			return true
		}
	}
	return false
}

func deadlineKey(comp Competition) string {
	if comp.Deadline == nil {
		return ""
	}
	return comp.Deadline.Format(time.RFC3339)
}
