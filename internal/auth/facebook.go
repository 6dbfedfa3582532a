package auth

import (
	"alcyxob/fitness-tracker/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type debugTokenResponse struct {
	Data debugTokenData `json:"data"`
}

type debugTokenData struct {
	AppID     string `json:"app_id"`
	Type      string `json:"type"`
	IsValid   bool   `json:"is_valid"`
	ExpiresAt int64  `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// FacebookVerifier asks the Graph API debug_token endpoint about the token.
type FacebookVerifier struct {
	cfg    config.FacebookConfig
	client *http.Client
	now    func() time.Time
}

func NewFacebookVerifier(cfg config.FacebookConfig, client *http.Client) *FacebookVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &FacebookVerifier{cfg: cfg, client: client, now: time.Now}
}

func (v *FacebookVerifier) Verify(ctx context.Context, id, token string) error {
	if id == "" || token == "" {
		return ErrInvalidCredentials
	}

	data, err := v.debugToken(ctx, token)
	if err != nil {
		return err
	}

	if reason := v.check(data, id); reason != "" {
		log.Debugf("facebook token rejected for [%s]: %s", id, reason)
		return ErrInvalidCredentials
	}
	return nil
}

func (v *FacebookVerifier) check(data debugTokenData, id string) string {
	switch {
	case !data.IsValid:
		return "token not valid"
	case data.AppID != v.cfg.AppID:
		return "token for wrong application"
	case data.Type != "USER":
		return "not a user token"
	case data.UserID != id:
		return "token does not belong to user"
	case data.ExpiresAt != 0 && v.now().Unix() > data.ExpiresAt:
		return "token expired"
	}
	return ""
}

func (v *FacebookVerifier) debugToken(ctx context.Context, token string) (debugTokenData, error) {
	endpoint := strings.TrimRight(v.cfg.GraphURL, "/")
	if v.cfg.GraphVersion != "" {
		endpoint += "/" + v.cfg.GraphVersion
	}
	query := url.Values{}
	query.Set("input_token", token)
	query.Set("access_token", v.cfg.AppID+"|"+v.cfg.AppSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/debug_token?"+query.Encode(), nil)
	if err != nil {
		return debugTokenData{}, fmt.Errorf("build debug_token request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return debugTokenData{}, fmt.Errorf("call debug_token: %w", err)
	}
	defer resp.Body.Close()

	// graph answers 400 for garbage tokens
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return debugTokenData{}, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return debugTokenData{}, fmt.Errorf("debug_token: unexpected status %d", resp.StatusCode)
	}

	var body debugTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return debugTokenData{}, fmt.Errorf("decode debug_token: %w", err)
	}
	return body.Data, nil
}
