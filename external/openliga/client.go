package openliga

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/bolzplatz/tippspiel/internal/platform/logging"
	"github.com/bolzplatz/tippspiel/internal/usecase"
)

const defaultBaseURL = "https://api.openligadb.de"

var errOpenLigaTransient = crerr.New("openligadb transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client implements usecase.FeedProvider against OpenLigaDB. Every call is
// try-once: a failure surfaces as ErrDependencyUnavailable and the caller
// keeps its stored state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

var _ usecase.FeedProvider = (*Client)(nil)

func (c *Client) MatchesByCompetition(ctx context.Context, competition, season, filter string) ([]usecase.FeedMatch, error) {
	path := fmt.Sprintf("/getmatchdata/%s/%s", url.PathEscape(competition), url.PathEscape(season))
	if filter != "" {
		path += "/" + url.PathEscape(filter)
	}

	var payload []apiMatch
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.FeedMatch, 0, len(payload))
	for _, m := range payload {
		out = append(out, toFeedMatch(m))
	}
	return out, nil
}

func (c *Client) MatchByID(ctx context.Context, id int64) (usecase.FeedMatch, error) {
	var payload apiMatch
	if err := c.getJSON(ctx, "/getmatchdata/"+strconv.FormatInt(id, 10), &payload); err != nil {
		return usecase.FeedMatch{}, err
	}
	if payload.MatchID == 0 {
		return usecase.FeedMatch{}, fmt.Errorf("%w: match %d", usecase.ErrNotFound, id)
	}
	return toFeedMatch(payload), nil
}

func (c *Client) AvailableTeams(ctx context.Context, competition, season string) ([]usecase.FeedTeam, error) {
	path := fmt.Sprintf("/getavailableteams/%s/%s", url.PathEscape(competition), url.PathEscape(season))

	var payload []apiTeam
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.FeedTeam, 0, len(payload))
	for _, t := range payload {
		out = append(out, toFeedTeam(t))
	}
	return out, nil
}

func (c *Client) Table(ctx context.Context, competition, season string) ([]usecase.FeedTableRow, error) {
	path := fmt.Sprintf("/getbltable/%s/%s", url.PathEscape(competition), url.PathEscape(season))

	var payload []apiTableRow
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.FeedTableRow, 0, len(payload))
	for _, row := range payload {
		out = append(out, usecase.FeedTableRow{
			TeamExternalID: row.TeamInfoID,
			TeamName:       row.TeamName,
			Points:         row.Points,
			Goals:          row.Goals,
			OpponentGoals:  row.OpponentGoals,
			Matches:        row.Matches,
			Won:            row.Won,
			Lost:           row.Lost,
			Draw:           row.Draw,
			GoalDiff:       row.GoalDiff,
		})
	}
	return out, nil
}

func (c *Client) CurrentRound(ctx context.Context, competition string) (int, error) {
	var payload apiCurrentGroup
	if err := c.getJSON(ctx, "/getcurrentgroup/"+url.PathEscape(competition), &payload); err != nil {
		return 0, err
	}
	return payload.GroupOrderID, nil
}

func (c *Client) LastChangeAt(ctx context.Context, competition, season string, round int) (time.Time, error) {
	path := fmt.Sprintf("/getlastchangedate/%s/%s/%d",
		url.PathEscape(competition), url.PathEscape(season), round)

	var payload fuzzyTime
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return time.Time{}, err
	}
	return payload.Time, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "openligadb request failed", "url", fullURL, "error", err)
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, crerr.Wrap(errOpenLigaTransient, err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", usecase.ErrDependencyUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "openligadb bad status", "url", fullURL, "status", resp.StatusCode)
		return fmt.Errorf("%w: feed status=%d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode feed payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

func toFeedMatch(m apiMatch) usecase.FeedMatch {
	t1, t2 := extractScore(m.MatchResults)
	return usecase.FeedMatch{
		ExternalID:   m.MatchID,
		Round:        m.Group.GroupOrderID,
		GroupName:    m.Group.GroupName,
		Team1:        toFeedTeam(m.Team1),
		Team2:        toFeedTeam(m.Team2),
		Team1Score:   t1,
		Team2Score:   t2,
		KickoffAt:    m.MatchDateTimeUTC.UTC(),
		Finished:     m.MatchIsFinished,
		LastUpdateAt: m.LastUpdateDateTime.Time,
	}
}

func toFeedTeam(t apiTeam) usecase.FeedTeam {
	return usecase.FeedTeam{
		ExternalID: t.TeamID,
		Name:       t.TeamName,
		ShortName:  t.ShortName,
		IconURL:    t.TeamIconURL,
		GroupName:  t.TeamGroupName,
	}
}
