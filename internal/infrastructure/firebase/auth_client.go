package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"undulcito/internal/domain/entity"
)

const (
	identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	secureTokenURL     = "https://securetoken.googleapis.com/v1/token"
)

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client

	signInURL  string
	refreshURL string
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:     client,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		signInURL:  identityToolkitURL,
		refreshURL: secureTokenURL,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	identity := &entity.Identity{UID: result.UID}
	if email, ok := result.Claims["email"].(string); ok {
		identity.Email = strings.ToLower(email)
	}
	return identity, nil
}

type firebaseError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("firebase api key is not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.signInURL+"?key="+url.QueryEscape(f.apiKey), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := f.do(req, &body); err != nil {
		return nil, err
	}

	return &entity.AuthSession{
		IDToken:      body.IDToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    atoi(body.ExpiresIn),
		UID:          body.LocalID,
		Email:        body.Email,
	}, nil
}

func (f *FirebaseAuthClient) RefreshIdToken(ctx context.Context, refreshToken string) (*entity.AuthSession, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.refreshURL+"?key="+url.QueryEscape(f.apiKey), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
		UserID       string `json:"user_id"`
	}
	if err := f.do(req, &body); err != nil {
		return nil, err
	}

	return &entity.AuthSession{
		IDToken:      body.IDToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    atoi(body.ExpiresIn),
		UID:          body.UserID,
	}, nil
}

func (f *FirebaseAuthClient) do(req *http.Request, out interface{}) error {
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var fbErr firebaseError
		_ = json.NewDecoder(resp.Body).Decode(&fbErr)
		if fbErr.Error.Message != "" {
			return fmt.Errorf("firebase auth: %s", fbErr.Error.Message)
		}
		return fmt.Errorf("firebase auth: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// TestConnection checks the admin SDK can reach Firebase Auth.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "health-check")
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
