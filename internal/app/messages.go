// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the user-facing message strings shared by the realm
// pages and JSON API, so both surfaces use the same wording.
package app

const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgUserRegistered confirms a successful registration.
	MsgUserRegistered = "user registered successfully"

	// MsgUsernameTaken is returned when the username is already registered.
	MsgUsernameTaken = "username already exists"

	// MsgInvalidUsernamePassword is returned for an unknown username and for
	// a wrong password alike.
	MsgInvalidUsernamePassword = "invalid username or password"

	// MsgInvalidOrExpiredToken is returned for every rejected token.
	MsgInvalidOrExpiredToken = "Invalid or expired token"

	// MsgTokenRequired is shown when a page is opened without a token.
	MsgTokenRequired = "Token is required"

	// MsgStateInitFailed is shown when the game state could not be loaded
	// or created.
	MsgStateInitFailed = "Failed to initialize user game data."

	// MsgUserDataNotFound is shown when a game action finds no state.
	MsgUserDataNotFound = "User data not found"

	// MsgCollectTooSoon is flashed when resources are collected within the
	// cooldown.
	MsgCollectTooSoon = "You have already collected resources within the last hour."

	// MsgCollectFailed and MsgUpgradeFailed are shown on unexpected errors.
	MsgCollectFailed = "Failed to collect resources."
	MsgUpgradeFailed = "Failed to upgrade building."

	// MsgInvalidBuildingType is flashed for a building outside the known set.
	MsgInvalidBuildingType = "Invalid building type."

	// Format strings of the success flashes.
	MsgCollectedFormat = "Resources collected! You now have %d wood, %d stone and %d gold."
	MsgUpgradedFormat  = "The %s is now level %d!"
)
