// Package google provides OAuth2 authentication and token management for
// the Google APIs this tool talks to (Gmail and Sheets).
//
// Tokens are cached per account under the user cache dir. The OAuth client
// credentials are not baked in; they come from configuration (or the
// GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET environment variables) and are
// installed once at startup via SetCredentials.
package google
