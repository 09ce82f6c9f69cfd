// services/recommendation_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrExternalService marks a failed or malformed recommendation call. It is
// recoverable: the caller reports it and carries on.
var ErrExternalService = errors.New("recommendation service failed")

type RecommendationRequest struct {
	TimeOfDay    string   `json:"timeOfDay"`
	OrderHistory []string `json:"orderHistory"`
}

// Recommendation is displayed verbatim; only its shape is validated.
type Recommendation struct {
	DishName    string `json:"dishName"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// RecommendationService calls an external dish recommender. One attempt per
// request with a bounded timeout; no retries.
type RecommendationService struct {
	url    string
	client *http.Client
}

func NewRecommendationService(url string, timeout time.Duration) *RecommendationService {
	return &RecommendationService{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a recommender endpoint was set up at all.
func (s *RecommendationService) Configured() bool {
	return s.url != ""
}

// Recommend requests a dish suggestion. Any transport failure, non-200
// response or missing field surfaces as ErrExternalService.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendationRequest) (Recommendation, error) {
	if !s.Configured() {
		return Recommendation{}, fmt.Errorf("%w: no recommender endpoint configured", ErrExternalService)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Recommendation{}, fmt.Errorf("%w: encode request: %v", ErrExternalService, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return Recommendation{}, fmt.Errorf("%w: build request: %v", ErrExternalService, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Recommendation{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Recommendation{}, fmt.Errorf("%w: recommender returned status %d", ErrExternalService, resp.StatusCode)
	}

	var rec Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Recommendation{}, fmt.Errorf("%w: decode response: %v", ErrExternalService, err)
	}
	if rec.DishName == "" || rec.Description == "" || rec.Reason == "" {
		return Recommendation{}, fmt.Errorf("%w: response missing required fields", ErrExternalService)
	}
	return rec, nil
}

// TimeOfDay buckets a clock time the way the recommender expects.
func TimeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 6:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 22:
		return "evening"
	default:
		return "night"
	}
}
