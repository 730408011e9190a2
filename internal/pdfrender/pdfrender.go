// Package pdfrender turns a finished quote report into a PDF via headless
// Chromium. The Markdown report is converted to HTML with goldmark and
// printed through the DevTools protocol.
package pdfrender

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/quotelab/mortgage-quoter/internal/quote"
)

const renderTimeout = 30 * time.Second

type Renderer struct {
	chromePath string
}

func New() *Renderer {
	return &Renderer{chromePath: detectChromePath()}
}

func (r *Renderer) Render(ctx context.Context, q *quote.Quote) ([]byte, error) {
	htmlDoc, err := buildHTML(q)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` +
				`стр. <span class="pageNumber"></span> из <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

const styleCSS = `body{font-family:'PT Sans','Segoe UI',sans-serif;color:#1c1917;line-height:1.45;}
.quote-wrap{max-width:820px;margin:0 auto;padding:0.6rem;}
.quote-meta{color:#44403c;font-size:0.8rem;border-bottom:2px solid #92400e;padding-bottom:0.5rem;margin-bottom:0.8rem;}
.quote-meta strong{color:#1c1917;}
.quote-html h2{font-size:1.2rem;border-bottom:1px solid #d6d3d1;padding-bottom:0.2rem;}
.quote-html ul{padding-left:1.2rem;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{ @page{size:auto;margin:12mm;} }`

func buildHTML(q *quote.Quote) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(q.Report), &content); err != nil {
		return "", fmt.Errorf("pdfrender: markdown convert: %w", err)
	}

	meta := fmt.Sprintf("<strong>%s</strong> · расчет %s · %s",
		html.EscapeString(q.First.Bank),
		html.EscapeString(q.ID),
		q.CreatedAt.Format("02.01.2006 15:04"))

	return "<!doctype html><html><head><meta charset='utf-8'><title>Расчет страхования</title>" +
		"<style>" + styleCSS + "</style></head><body>" +
		"<div class='quote-wrap'><div class='quote-meta'>" + meta + "</div>" +
		"<div class='quote-html'>" + content.String() + "</div></div>" +
		"</body></html>", nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
