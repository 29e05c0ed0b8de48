package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-gym-api/internal/domain"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// PasswordVerifier checks email+password against the identity-platform
// password sign-in endpoint. The admin SDK deliberately has no password
// verification, so this is a plain REST call keyed by the web API key.
type PasswordVerifier struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewPasswordVerifier(apiKey string) *PasswordVerifier {
	return &PasswordVerifier{
		apiKey:   apiKey,
		endpoint: signInEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

var _ TokenVerifier = (*PasswordVerifier)(nil)

func (v *PasswordVerifier) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", domain.NewStoreError("verify-password", "auth", "", err)
	}

	u := v.endpoint + "?key=" + url.QueryEscape(v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewStoreError("verify-password", "auth", "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := v.client.Do(req)
	if err != nil {
		return "", domain.NewStoreError("verify-password", "auth", "", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// The endpoint answers 400 for every credential problem
		// (EMAIL_NOT_FOUND, INVALID_PASSWORD, USER_DISABLED).
		if res.StatusCode == http.StatusBadRequest {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.NewStoreError("verify-password", "auth", "",
			fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var out struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", domain.NewStoreError("verify-password", "auth", "", err)
	}
	return out.Email, nil
}
