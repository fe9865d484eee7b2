package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/config"
	"github.com/tdnghia98/Caracal/internal/apperror"
)

// httpService talks to a GoTrue-style auth API: user lookup with the caller's
// own token, admin user creation and listing with the service key.
type httpService struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewHTTPService(cfg *config.Config) Service {
	return &httpService{
		baseURL:    cfg.Auth.BaseURL,
		serviceKey: cfg.Auth.ServiceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *httpService) GetCallerIdentity(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperror.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("building user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperror.ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decoding identity: %w", err)
	}
	return &identity, nil
}

func (s *httpService) CreateIdentity(ctx context.Context, email, password string, metadata Metadata) (*Identity, error) {
	payload := map[string]interface{}{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"user_metadata": metadata,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding create-identity payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/v1/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building create-identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &apperror.StoreWriteError{Op: "create identity", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := readBody(resp.Body)
		log.Warn().Int("status", resp.StatusCode).Str("email", email).Msg("Auth service rejected identity creation")
		return nil, &apperror.StoreWriteError{Op: "create identity", Err: fmt.Errorf("auth service returned %d: %s", resp.StatusCode, msg)}
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decoding created identity: %w", err)
	}
	log.Info().Str("auth_user_id", identity.ID).Str("email", identity.Email).Msg("Auth identity created")
	return &identity, nil
}

func (s *httpService) ListIdentities(ctx context.Context) ([]Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/admin/users", nil)
	if err != nil {
		return nil, fmt.Errorf("building list-identities request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var listing struct {
		Users []Identity `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding identity listing: %w", err)
	}
	return listing.Users, nil
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return string(b)
}
