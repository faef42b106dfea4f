package models

import "time"

// MessageResponse is a generic JSON body carrying a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned by the auth service after a successful
// registration. RedirectURL points at the login page.
type RegisterResponse struct {
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url"`
}

// LoginResponse is returned by the auth service after a successful login.
// RedirectURL is the game entry point with the token embedded as a query
// parameter.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	RedirectURL string `json:"redirect_url"`
}

// StateResponse is the JSON view of a user's game state.
type StateResponse struct {
	GameState

	CanCollect    bool      `json:"can_collect"`
	NextCollectAt time.Time `json:"next_collect_at"`
}

// VersionResponse is served by the version endpoint of both services.
type VersionResponse struct {
	Service      string `json:"service"`
	Version      string `json:"version"`
	BuildVersion string `json:"build_version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
}
