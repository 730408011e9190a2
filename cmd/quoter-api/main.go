package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/aiextract"
	"github.com/quotelab/mortgage-quoter/internal/history"
	"github.com/quotelab/mortgage-quoter/internal/httpapi"
	"github.com/quotelab/mortgage-quoter/internal/pdfrender"
	"github.com/quotelab/mortgage-quoter/internal/registry"
	"github.com/quotelab/mortgage-quoter/internal/telemetry"
)

func main() {
	dbFlag := flag.String("db", "", "path to SQLite quote history (overrides DB_PATH env var)")
	noPDF := flag.Bool("no-pdf", false, "disable the PDF rendering endpoint")
	flag.Parse()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, "quoter-api")
	if err != nil {
		log.Fatalf("tracing setup: %v", err)
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = shutdownTracing(sctx)
	}()

	reg := registry.MustLoad()
	opts := []httpapi.Option{}

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath != "" {
		store, err := history.NewStore(dbPath)
		if err != nil {
			log.Fatalf("open quote history (%s): %v", dbPath, err)
		}
		defer store.Close()
		opts = append(opts, httpapi.WithHistory(store))
		log.Printf("quote history at %s", dbPath)
	}

	if !*noPDF {
		opts = append(opts, httpapi.WithPDFRenderer(pdfrender.New()))
	}

	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		caller, err := aiextract.NewAnthropicCallerFromEnv()
		if err != nil {
			log.Fatalf("anthropic client: %v", err)
		}
		opts = append(opts, httpapi.WithAIExtractor(aiextract.New(caller, reg)))
		log.Printf("model-backed extraction enabled")
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewServer(reg, opts...),
	}
	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Printf("quoter-api listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
