package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/morphlex/morphlex/live"
)

const seed = `<!DOCTYPE html>
<html>
<head><title>morphlex live preview</title></head>
<body>
  <h1 id="title">morphlex</h1>
  <ul id="items">
    <li id="item-1">one</li>
    <li id="item-2">two</li>
  </ul>
  <form>
    <input type="text" name="q" value="">
  </form>
</body>
</html>`

func LoggerMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("HTTP request", "method", r.Method, "url", r.URL)
		next.ServeHTTP(w, r)
	})
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	h, err := live.New(live.Config{
		Seed:            seed,
		PreserveChanges: true,
		AttributeGuards: []string{`hasPrefix(name, "data-")`},
		Logger:          logger,
	})
	if err != nil {
		logger.Error("Create live handler", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting HTTP server", "address", "http://localhost:8080")

	err = http.ListenAndServe(":8080", LoggerMiddleware(h, logger))

	logger.Error("HTTP server error", "error", err)
}
