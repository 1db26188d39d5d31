// Where: internal/report/details.go
// What: Structured detail report for a single competition.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/dustin/go-humanize"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/mcp"
	"github.com/rs/zerolog/log"
)

// writeupPatterns identify notebook titles that read like solution writeups.
var writeupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+(st|nd|rd|th)\s+place\b`),
	regexp.MustCompile(`(?i)\bwinning\s+solution\b`),
	regexp.MustCompile(`(?i)\bgold\s+(medal\s+)?solution\b`),
	regexp.MustCompile(`(?i)\btop\s+\d+%?\s+solution\b`),
	regexp.MustCompile(`(?i)\bwinner'?s?\s+writeup\b`),
	regexp.MustCompile(`(?i)\bsolution\s+writeup\b`),
}

// IsWriteupTitle reports whether a notebook title looks like a solution
// writeup.
func IsWriteupTitle(title string) bool {
	for _, p := range writeupPatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

// FileInfo is one competition data file.
type FileInfo struct {
	Name      string `json:"name"`
	Size      uint64 `json:"size"`
	HumanSize string `json:"human_size"`
}

// LeaderboardEntry is one ranked leaderboard row.
type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Team  string `json:"team"`
	Score string `json:"score"`
}

// NotebookInfo is one highly voted notebook for the competition.
type NotebookInfo struct {
	Title     string `json:"title"`
	Ref       string `json:"ref"`
	Votes     int    `json:"votes"`
	URL       string `json:"url"`
	IsWriteup bool   `json:"is_writeup"`
}

// Details is the full single-competition report.
type Details struct {
	Slug             string             `json:"slug"`
	URL              string             `json:"url"`
	Files            []FileInfo         `json:"files"`
	LeaderboardTop   []LeaderboardEntry `json:"leaderboard_top"`
	TopNotebooks     []NotebookInfo     `json:"top_notebooks"`
	WriteupNotebooks []NotebookInfo     `json:"writeup_notebooks"`
}

// Details assembles data files, leaderboard, and top notebooks for one
// competition. Sub-queries that fail leave their section empty rather than
// failing the report.
func (s *Service) Details(ctx context.Context, slug string, topN int) (*Details, error) {
	if topN <= 0 {
		topN = 5
	}
	details := &Details{
		Slug: slug,
		URL:  "https://www.kaggle.com/competitions/" + slug,
	}

	files, err := s.competitionFiles(ctx, slug)
	if err != nil {
		log.Warn().Str("slug", slug).Err(err).Msg("file listing unavailable")
	}
	details.Files = files

	leaderboard, err := s.leaderboard(ctx, slug, topN)
	if err != nil {
		log.Warn().Str("slug", slug).Err(err).Msg("leaderboard unavailable")
	}
	details.LeaderboardTop = leaderboard

	notebooks, err := s.topNotebooks(ctx, slug)
	if err != nil {
		log.Warn().Str("slug", slug).Err(err).Msg("notebook listing unavailable")
	}
	details.TopNotebooks = notebooks
	for _, nb := range notebooks {
		if nb.IsWriteup {
			details.WriteupNotebooks = append(details.WriteupNotebooks, nb)
		}
	}
	return details, nil
}

func (s *Service) callJSON(ctx context.Context, tool string, fields map[string]any, into any) error {
	res, err := s.Tools.CallTool(ctx, tool, map[string]any{"request": fields}, s.Creds)
	if err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	if res.Classification != dispatch.Success {
		return fmt.Errorf("%s: %s", tool, res.RawOutput)
	}
	text, err := mcp.ResultText(res.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	if err := json.Unmarshal([]byte(text), into); err != nil {
		return fmt.Errorf("%s: decode payload: %w", tool, err)
	}
	return nil
}

func (s *Service) competitionFiles(ctx context.Context, slug string) ([]FileInfo, error) {
	var doc struct {
		Files []struct {
			Name       string `json:"name"`
			TotalBytes uint64 `json:"totalBytes"`
			Size       uint64 `json:"size"`
		} `json:"files"`
	}
	err := s.callJSON(ctx, "list_competition_data_files", map[string]any{
		"competitionName": slug, "pageSize": 50, "hasPageSize": true,
	}, &doc)
	if err != nil {
		return nil, err
	}
	files := make([]FileInfo, 0, len(doc.Files))
	for _, f := range doc.Files {
		size := f.TotalBytes
		if size == 0 {
			size = f.Size
		}
		files = append(files, FileInfo{Name: f.Name, Size: size, HumanSize: humanize.Bytes(size)})
	}
	return files, nil
}

func (s *Service) leaderboard(ctx context.Context, slug string, topN int) ([]LeaderboardEntry, error) {
	var doc struct {
		Submissions []struct {
			TeamName string          `json:"teamName"`
			Score    json.RawMessage `json:"score"`
		} `json:"submissions"`
	}
	err := s.callJSON(ctx, "get_competition_leaderboard", map[string]any{
		"competitionName": slug, "pageSize": topN, "hasPageSize": true,
	}, &doc)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, topN)
	for i, row := range doc.Submissions {
		if i >= topN {
			break
		}
		entries = append(entries, LeaderboardEntry{
			Rank:  i + 1,
			Team:  row.TeamName,
			Score: scoreString(row.Score),
		})
	}
	return entries, nil
}

// scoreString accepts numeric and string scores.
func scoreString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func (s *Service) topNotebooks(ctx context.Context, slug string) ([]NotebookInfo, error) {
	var doc struct {
		Notebooks []struct {
			Title      string `json:"title"`
			Ref        string `json:"ref"`
			TotalVotes int    `json:"totalVotes"`
		} `json:"notebooks"`
	}
	err := s.callJSON(ctx, "search_notebooks", map[string]any{
		"search": slug, "hasSearch": true,
		"sortBy": "VoteCount", "pageSize": 10, "hasPageSize": true,
		"group": "Everyone",
	}, &doc)
	if err != nil {
		return nil, err
	}
	notebooks := make([]NotebookInfo, 0, len(doc.Notebooks))
	for _, nb := range doc.Notebooks {
		info := NotebookInfo{
			Title:     nb.Title,
			Ref:       nb.Ref,
			Votes:     nb.TotalVotes,
			IsWriteup: IsWriteupTitle(nb.Title),
		}
		if nb.Ref != "" {
			info.URL = "https://www.kaggle.com/code/" + nb.Ref
		}
		notebooks = append(notebooks, info)
	}
	return notebooks, nil
}
