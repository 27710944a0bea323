package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"rollcall/internal/domain/roster"
)

// Ensure HTTPProvider implements Provider.
var _ Provider = (*HTTPProvider)(nil)

// HTTPProvider fetches roster data from the remote web service. Each endpoint
// answers with a bare JSON array.
type HTTPProvider struct {
	classesURL      string
	participantsURL string // class ID is appended
	servantsURL     string
	client          *http.Client
}

// NewHTTPProvider creates a roster provider client.
// PRE: the three URLs point at the roster service endpoints
// POST: Returns a provider whose calls time out after the given duration
func NewHTTPProvider(classesURL, participantsURL, servantsURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		classesURL:      classesURL,
		participantsURL: participantsURL,
		servantsURL:     servantsURL,
		client:          &http.Client{Timeout: timeout},
	}
}

// Classes lists the selectable classes.
func (p *HTTPProvider) Classes(ctx context.Context) ([]roster.Class, error) {
	var classes []roster.Class
	if err := p.getJSON(ctx, p.classesURL, &classes); err != nil {
		return nil, fmt.Errorf("fetch classes: %w", err)
	}
	slog.Info("roster_event", "event", "classes_fetched", "count", len(classes))
	return classes, nil
}

// Participants lists the enrolled participants for one class.
func (p *HTTPProvider) Participants(ctx context.Context, classID int) ([]roster.Participant, error) {
	var participants []roster.Participant
	if err := p.getJSON(ctx, p.participantsURL+strconv.Itoa(classID), &participants); err != nil {
		return nil, fmt.Errorf("fetch participants for class %d: %w", classID, err)
	}
	slog.Info("roster_event", "event", "participants_fetched", "class_id", classID, "count", len(participants))
	return participants, nil
}

// Servants lists the operators allowed to run the scanner.
func (p *HTTPProvider) Servants(ctx context.Context) ([]roster.Servant, error) {
	var servants []roster.Servant
	if err := p.getJSON(ctx, p.servantsURL, &servants); err != nil {
		return nil, fmt.Errorf("fetch servants: %w", err)
	}
	slog.Info("roster_event", "event", "servants_fetched", "count", len(servants))
	return servants, nil
}

// getJSON performs a GET and decodes the bare JSON array response.
func (p *HTTPProvider) getJSON(ctx context.Context, uri string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
