package google

// DefaultOAuthScopes are the Google OAuth scopes the reporter needs:
// read-only Gmail access for scanning threads, and Sheets access for the
// spreadsheet report sink.
var DefaultOAuthScopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/spreadsheets",
}
