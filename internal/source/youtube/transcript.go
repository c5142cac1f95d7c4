package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sciencevideodb/internal/domain"
)

const (
	defaultTranscriptURL     = "https://www.youtube.com/api/timedtext"
	defaultTranscriptTimeout = 30 * time.Second
	maxTranscriptBytes       = 10 * 1024 * 1024
)

// timedtextResponse is the json3 caption format of the timedtext endpoint.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	StartMs    int64          `json:"tStartMs"`
	DurationMs int64          `json:"dDurationMs"`
	Segs       []timedtextSeg `json:"segs"`
}

type timedtextSeg struct {
	UTF8 string `json:"utf8"`
}

// transcriptFetcher reads public caption tracks. It needs no API key.
type transcriptFetcher struct {
	httpClient *http.Client
	baseURL    string
}

func newTranscriptFetcher(baseURL string, timeout time.Duration) *transcriptFetcher {
	if baseURL == "" {
		baseURL = defaultTranscriptURL
	}
	if timeout <= 0 {
		timeout = defaultTranscriptTimeout
	}
	return &transcriptFetcher{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (f *transcriptFetcher) fetch(ctx context.Context, videoID, lang string) ([]domain.CaptionEntry, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", ErrTranscriptUnavailable)
	}
	if lang == "" {
		lang = "en"
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTranscriptUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ScienceVideoDB/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s: %v", ErrTranscriptUnavailable, videoID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: no %s captions for video %s", ErrTranscriptUnavailable, lang, videoID)
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: video %s is private, region restricted or has captions disabled", ErrTranscriptUnavailable, videoID)
	default:
		return nil, fmt.Errorf("%w: video %s: unexpected status %d", ErrTranscriptUnavailable, videoID, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTranscriptBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTranscriptUnavailable, err)
	}

	return parseTimedtext(body)
}

// parseTimedtext decodes a json3 payload. An empty payload is a valid
// track with no captions.
func parseTimedtext(body []byte) ([]domain.CaptionEntry, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []domain.CaptionEntry{}, nil
	}

	var resp timedtextResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode timedtext: %v", ErrTranscriptUnavailable, err)
	}

	entries := make([]domain.CaptionEntry, 0, len(resp.Events))
	for _, ev := range resp.Events {
		var text strings.Builder
		for _, seg := range ev.Segs {
			text.WriteString(seg.UTF8)
		}
		line := strings.TrimSpace(text.String())
		if line == "" {
			continue
		}
		entries = append(entries, domain.CaptionEntry{
			Text:     line,
			Start:    float64(ev.StartMs) / 1000,
			Duration: float64(ev.DurationMs) / 1000,
		})
	}
	return entries, nil
}
