package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/osse101/SpinHall_Go/internal/apiclient"
	"github.com/osse101/SpinHall_Go/internal/utils"
)

// savedSession is what the token file holds between runs
type savedSession struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// authenticate reuses a saved token when the server still accepts it and
// logs in with the given credentials otherwise
func authenticate(ctx context.Context, api *apiclient.Client, opts options) (savedSession, error) {
	var saved savedSession
	if err := utils.LoadJSON(opts.tokenFile, &saved); err == nil && saved.Token != "" {
		api.SetToken(saved.Token)
		_, err := api.GetBalance(ctx)
		if err == nil {
			return saved, nil
		}
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
			return savedSession{}, err
		}
		api.SetToken("")
	}

	if opts.username == "" || opts.password == "" {
		return savedSession{}, errors.New("not logged in: pass -user and -password")
	}

	resp, err := api.Login(ctx, opts.username, opts.password)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.RateLimited() {
			return savedSession{}, fmt.Errorf("too many attempts, try again in %s", apiErr.RetryAfter())
		}
		return savedSession{}, err
	}

	saved = savedSession{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Username: resp.User.Username,
	}
	if err := utils.SavePrivateJSON(opts.tokenFile, saved); err != nil {
		return savedSession{}, fmt.Errorf("failed to save token: %w", err)
	}
	return saved, nil
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
