package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// successPage is served to the browser tab once the exchange completes,
// steering the user back to the terminal.
const successPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>hei!local</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
               background: #FFF4E6; display: grid; place-items: center;
               min-height: 100vh; margin: 0; }
        main { background: white; border-radius: 12px; padding: 2.5rem 3rem;
               box-shadow: 0 4px 12px rgba(232, 89, 12, 0.15); text-align: center; }
        h1 { color: #E8590C; font-size: 1.4rem; margin: 0 0 0.5rem; }
        p { color: #868E96; margin: 0; }
    </style>
</head>
<body>
    <main>
        <h1>Signed in to hei!local ✓</h1>
        <p>This tab is done. Head back to the terminal.</p>
    </main>
</body>
</html>
`

// OAuthResult carries the outcome of one authorization-code flow:
// either the exchanged token or the error that ended the flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler terminates the Google authorization-code flow on the
// local callback server. It accepts a single callback, checks the
// state token, exchanges the code, and publishes the outcome on a
// one-shot channel the sign-in command blocks on.
type OAuthHandler struct {
	config      *oauth2.Config
	state       string
	resultChan  chan OAuthResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewOAuthHandler builds a handler bound to the given OAuth2 config and
// state token. The state token must be cryptographically random so
// forged callbacks fail the comparison.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:     config,
		state:      state,
		resultChan: make(chan OAuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/callback"}
}

// claim marks the callback consumed. Only the first caller wins;
// later hits are replays.
func (h *OAuthHandler) claim() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.callbackHit {
		return false
	}
	h.callbackHit = true

	return true
}

// authCode validates the callback query and extracts the authorization
// code, turning provider denials into errors.
func (h *OAuthHandler) authCode(r *http.Request) (string, error) {
	if state := r.URL.Query().Get("state"); state != h.state {
		return "", fmt.Errorf("invalid state parameter")
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		return "", fmt.Errorf("authorization failed: %s - %s", errParam, errDesc)
	}

	return code, nil
}

// ServeHTTP handles the provider's redirect back to the local server.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.claim() {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}

	code, err := h.authCode(r)
	if err != nil {
		h.Send(OAuthResult{err: err})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.Send(OAuthResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.Send(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Send publishes the flow outcome. Safe to call more than once; only
// the first result is delivered.
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel the sign-in command waits on. It receives
// exactly one result and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}
