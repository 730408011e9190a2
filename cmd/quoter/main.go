package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/aiextract"
	"github.com/quotelab/mortgage-quoter/internal/history"
	"github.com/quotelab/mortgage-quoter/internal/installment"
	"github.com/quotelab/mortgage-quoter/internal/pdfrender"
	"github.com/quotelab/mortgage-quoter/internal/quote"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

func main() {
	textFlag := flag.String("text", "", "request text (defaults to stdin)")
	fileFlag := flag.String("file", "", "path to a file with the request text")
	discount := flag.Float64("discount", -1, "extra quote at this flat discount percent")
	installmentMode := flag.Bool("installment", false, "price installment life cover instead of a mortgage quote")
	useAI := flag.Bool("ai", false, "extract with the Anthropic model (needs ANTHROPIC_API_KEY)")
	pdfPath := flag.String("pdf", "", "also render the quote to this PDF file")
	dbPath := flag.String("db", "", "also save the quote to this SQLite history")
	asJSON := flag.Bool("json", false, "print the full quote as JSON instead of the report")
	flag.Parse()

	text, err := readText(*textFlag, *fileFlag)
	if err != nil {
		log.Fatal(err)
	}

	reg := registry.MustLoad()
	if *installmentMode {
		runInstallment(reg, text)
		return
	}

	req := quote.Request{Text: text}
	if *discount >= 0 {
		req.CustomDiscountPercent = discount
	}

	pipeline := quote.NewPipeline(reg)
	var q *quote.Quote
	if *useAI {
		caller, err := aiextract.NewAnthropicCallerFromEnv()
		if err != nil {
			log.Fatal(err)
		}
		res := aiextract.New(caller, reg).Extract(context.Background(), text)
		q, err = pipeline.QuoteExtracted(res, req.CustomDiscountPercent)
		if err != nil {
			fatalQuote(err)
		}
	} else {
		q, err = pipeline.Quote(req)
		if err != nil {
			fatalQuote(err)
		}
	}

	if *asJSON {
		blob, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			log.Fatalf("encode quote: %v", err)
		}
		fmt.Println(string(blob))
	} else {
		fmt.Println(q.Report)
	}

	if *dbPath != "" {
		store, err := history.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("open quote history: %v", err)
		}
		defer store.Close()
		if err := store.Save(q); err != nil {
			log.Fatalf("save quote: %v", err)
		}
	}

	if *pdfPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		pdf, err := pdfrender.New().Render(ctx, q)
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
		fmt.Fprintf(os.Stderr, "PDF сохранен в %s\n", *pdfPath)
	}
}

func runInstallment(reg *registry.Registry, text string) {
	p := installment.Parse(text, time.Now())
	if !p.Valid {
		fmt.Fprintln(os.Stderr, "Не хватает данных:")
		for _, prob := range p.Problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", prob)
		}
		os.Exit(1)
	}
	q, err := installment.NewCalculator(reg).Calculate(p)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s, %d лет (%s)\n", q.FullName, q.Age, q.Gender)
	fmt.Printf("Сумма: %.2f ₽ (в расчете %.2f ₽)\n", q.Amount, q.EffectiveAmount)
	fmt.Printf("Срок: %d мес. (тарифицировано %d мес.), тариф %.2f%%\n",
		q.MonthsUntilEnd, q.MonthsCalculated, q.TariffPercent)
	fmt.Printf("Премия: %.2f ₽, со скидкой: %.2f ₽\n", q.Standard, q.Discounted)
	for _, note := range q.Notes {
		fmt.Printf("Примечание: %s\n", note)
	}
	if q.RequiresMedicalExam {
		fmt.Println("Требуется медицинское обследование")
	}
}

func readText(textFlag, fileFlag string) (string, error) {
	switch {
	case textFlag != "":
		return textFlag, nil
	case fileFlag != "":
		blob, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", fmt.Errorf("read request file: %w", err)
		}
		return string(blob), nil
	default:
		blob, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if len(blob) == 0 {
			return "", errors.New("empty request: pass -text, -file or pipe text on stdin")
		}
		return string(blob), nil
	}
}

func fatalQuote(err error) {
	var verr *quote.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "Не хватает данных для расчета:")
		for _, prob := range verr.Problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", prob)
		}
		os.Exit(1)
	}
	log.Fatal(err)
}
