package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// callbackResult is what the loopback server hands back from the one
// redirect it accepts.
type callbackResult struct {
	code string
	err  error
}

const successPage = `<!DOCTYPE html>
<html><head><title>Sign-in complete</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em;">
<h1>&#10004; You're signed in!</h1>
<p>You can close this tab and return to the terminal.</p>
</body></html>`

const errorPage = `<!DOCTYPE html>
<html><head><title>Sign-in failed</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em;">
<h1>&#10008; Sign-in failed</h1>
<p>Return to the terminal and try again.</p>
</body></html>`

// waitForCallback runs a loopback HTTP server on port until Google
// redirects back with an authorization code, then shuts down. It
// validates the state parameter before accepting the code.
func waitForCallback(ctx context.Context, port int, state string) (string, error) {
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if errMsg := q.Get("error"); errMsg != "" {
			http.Error(w, errorPage, http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("authorization denied: %s", errMsg)}
			return
		}
		if q.Get("state") != state {
			http.Error(w, errorPage, http.StatusBadRequest)
			results <- callbackResult{err: errors.New("oauth state mismatch")}
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, errorPage, http.StatusBadRequest)
			results <- callbackResult{err: errors.New("callback missing authorization code")}
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, successPage)
		results <- callbackResult{code: code}
	})
	// Browsers also ask for this; don't treat it as the callback.
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return "", fmt.Errorf("starting callback listener: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	select {
	case res := <-results:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
